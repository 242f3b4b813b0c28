package validate

import (
	"errors"
	"strconv"

	"taller_manager/constants"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateCliente() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateClienteInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("inputCreateCliente", input)
		return c.Next()
	}
}

func EditCliente(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clienteId, err := strconv.Atoi(c.Params(key))
		if err != nil || clienteId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditClienteInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		c.Locals("inputId", clienteId)
		c.Locals("inputEditCliente", input)
		return c.Next()
	}
}
