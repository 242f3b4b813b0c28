package handler

import (
	"errors"
	"strings"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

func GetReparaciones(c *fiber.Ctx) error {
	db := database.DB

	filterInput := new(model.FilterReparacion)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Reparacion{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(dispositivo) LIKE ? OR LOWER(descripcion) LIKE ?", key, key)
	}
	if filterInput.Estado != "" {
		condition = condition.Where("estado = ?", filterInput.Estado)
	}
	if filterInput.EstadoPago != "" {
		condition = condition.Where("estado_pago = ?", filterInput.EstadoPago)
	}
	if filterInput.ClienteId != nil {
		condition = condition.Where("cliente_id = ?", *filterInput.ClienteId)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var reparaciones model.Reparaciones
	condition.Preload("Cliente").Preload("Fotos").Order("id DESC").Find(&reparaciones)

	response := &model.ResponseCustom{
		Rows:       reparaciones,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetReparacionById(c *fiber.Ctx) error {
	db := database.DB

	reparacionId := c.Locals("inputId").(int)
	rep, err := helper.GetReparacionConCliente(db, uint(reparacionId))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rep)
}

func CreateReparacion(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputCreateReparacion").(model.CreateReparacionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	var cliente model.Cliente
	if err := db.First(&cliente, input.ClienteId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	estado := input.Estado
	if estado == "" {
		estado = constants.ESTADO_PENDIENTE
	}

	reparacion := model.Reparacion{
		ClienteId:     input.ClienteId,
		Dispositivo:   input.Dispositivo,
		Descripcion:   input.Descripcion,
		Estado:        estado,
		FechaEntrada:  time.Now(),
		Precio:        input.Precio,
		EstadoPago:    constants.PAGO_PENDIENTE,
		CodigoPublico: "REP-" + uuid.New().String()[:8],
	}

	if err := db.Create(&reparacion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, reparacion)
}

func EditReparacion(c *fiber.Ctx) error {
	db := database.DB

	reparacionId := c.Locals("inputId").(int)
	input, ok := c.Locals("inputEditReparacion").(model.EditReparacionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	var reparacion model.Reparacion
	if err := db.First(&reparacion, reparacionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}

	// El precio de una reparación pagada no se toca: la corrección de un
	// pago mal registrado no está soportada.
	if reparacion.EstadoPago == constants.PAGO_PAGADO && input.Precio != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.REPARACION_YA_PAGADA, helper.ErrYaPagada)
	}

	tx := db.Begin()
	copier.CopyWithOption(&reparacion, &input, copier.Option{IgnoreEmpty: true})
	if input.Precio != nil {
		reparacion.Precio = input.Precio
	}

	if err := tx.Model(&model.Reparacion{DTO: model.DTO{ID: reparacion.ID}}).Updates(reparacion).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusOK, reparacion)
}

// MarcarPagado registra un pago en mostrador (efectivo, tarjeta, transferencia).
func MarcarPagado(c *fiber.Ctx) error {
	db := database.DB

	reparacionId := c.Locals("inputId").(int)
	input, ok := c.Locals("inputMarcarPagado").(model.MarcarPagadoInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	reparacion, err := helper.MarcarPagada(db, uint(reparacionId), input.MetodoPago)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrReparacionNoEncontrada):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
		case errors.Is(err, helper.ErrYaPagada):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.REPARACION_YA_PAGADA, err)
		case errors.Is(err, helper.ErrSinPrecio):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.REPARACION_SIN_PRECIO, err)
		case errors.Is(err, helper.ErrMetodoPagoInvalido):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.METODO_PAGO_OBLIGATORIO, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	PublishDashboardEvent(fiber.Map{
		"tipo":         "pago_recibido",
		"reparacionId": reparacion.ID,
		"metodo":       input.MetodoPago,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, reparacion)
}

// BorrarReparacion elimina una reparación; las pagadas nunca se borran.
func BorrarReparacion(c *fiber.Ctx) error {
	db := database.DB

	reparacionId := c.Locals("inputId").(int)
	if err := helper.BorrarReparacion(db, uint(reparacionId)); err != nil {
		switch {
		case errors.Is(err, helper.ErrReparacionNoEncontrada):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
		case errors.Is(err, helper.ErrYaPagada):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.REPARACION_YA_PAGADA, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": reparacionId})
}
