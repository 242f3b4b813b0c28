package validate

import (
	"errors"
	"strconv"

	"taller_manager/constants"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateReparacion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReparacionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("inputCreateReparacion", input)
		return c.Next()
	}
}

func EditReparacion(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reparacionId, err := strconv.Atoi(c.Params(key))
		if err != nil || reparacionId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditReparacionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		c.Locals("inputId", reparacionId)
		c.Locals("inputEditReparacion", input)
		return c.Next()
	}
}

// MarcarPagado valida el formulario de pago manual en mostrador.
func MarcarPagado(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reparacionId, err := strconv.Atoi(c.Params(key))
		if err != nil || reparacionId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.MarcarPagadoInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.METODO_PAGO_OBLIGATORIO, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, constants.METODO_PAGO_OBLIGATORIO, err)
		}

		c.Locals("inputId", reparacionId)
		c.Locals("inputMarcarPagado", input)
		return c.Next()
	}
}
