package handler

import (
	"errors"
	"strings"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetClientes(c *fiber.Ctx) error {
	db := database.DB

	filterInput := new(model.FilterCliente)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Cliente{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(nombre) LIKE ? OR LOWER(telefono) LIKE ?", key, key)
	}
	if filterInput.Telefono != "" {
		condition = condition.Where("telefono LIKE ?", "%"+filterInput.Telefono+"%")
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var clientes model.Clientes
	condition.Order("id ASC").Find(&clientes)

	response := &model.ResponseCustom{
		Rows:       clientes,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetClienteById(c *fiber.Ctx) error {
	db := database.DB

	clienteId := c.Locals("inputId").(int)
	var cliente model.Cliente
	if err := db.Preload("Reparaciones").First(&cliente, clienteId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cliente)
}

func CreateCliente(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputCreateCliente").(model.CreateClienteInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	existe, err := helper.CheckByTelefonoCliente(db, input.Telefono, nil)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err, "telefono")
	}
	if existe {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.PHONE_NUMBER_EXISTS, nil, "telefono")
	}

	cliente := new(model.Cliente)
	copier.Copy(&cliente, &input)

	if err := db.Create(&cliente).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, cliente)
}

func EditCliente(c *fiber.Ctx) error {
	db := database.DB

	clienteId := c.Locals("inputId").(int)
	input, ok := c.Locals("inputEditCliente").(model.EditClienteInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	var cliente model.Cliente
	if err := db.First(&cliente, clienteId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if input.Telefono != nil {
		id := cliente.ID
		existe, err := helper.CheckByTelefonoCliente(db, *input.Telefono, &id)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err, "telefono")
		}
		if existe {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.PHONE_NUMBER_EXISTS, nil, "telefono")
		}
	}

	tx := db.Begin()
	copier.CopyWithOption(&cliente, &input, copier.Option{IgnoreEmpty: true})

	if err := tx.Model(&model.Cliente{DTO: model.DTO{ID: cliente.ID}}).Updates(cliente).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusOK, cliente)
}

// BorrarCliente elimina un cliente solo si no tiene reparaciones asociadas.
func BorrarCliente(c *fiber.Ctx) error {
	db := database.DB

	clienteId := c.Locals("inputId").(int)

	var cliente model.Cliente
	if err := db.First(&cliente, clienteId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var count int64
	db.Model(&model.Reparacion{}).Where("cliente_id = ?", clienteId).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.CLIENTE_CON_REPARACIONES, errors.New("referential integrity"))
	}

	if err := db.Delete(&model.Cliente{}, clienteId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": clienteId})
}
