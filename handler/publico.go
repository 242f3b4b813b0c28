package handler

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// reparacionPublica es la vista sin datos internos que se expone al cliente.
type reparacionPublica struct {
	Codigo       string   `json:"codigo"`
	Dispositivo  string   `json:"dispositivo"`
	Estado       string   `json:"estado"`
	EstadoPago   string   `json:"estadoPago"`
	Precio       *float64 `json:"precio"`
	FechaEntrada string   `json:"fechaEntrada"`
}

func aVistaPublica(rep model.Reparacion) reparacionPublica {
	return reparacionPublica{
		Codigo:       rep.CodigoPublico,
		Dispositivo:  rep.Dispositivo,
		Estado:       rep.Estado,
		EstadoPago:   rep.EstadoPago,
		Precio:       rep.Precio,
		FechaEntrada: rep.FechaEntrada.Format("02/01/2006"),
	}
}

// ConsultaPublica lista las reparaciones de un cliente a partir de su
// teléfono, sin necesidad de cuenta.
func ConsultaPublica(c *fiber.Ctx) error {
	db := database.DB

	telefono := c.Query("telefono")
	if telefono == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("telefono vacio"), "telefono")
	}

	cliente, err := helper.GetClienteByTelefono(db, telefono)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if cliente == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New("telefono desconocido"))
	}

	var reparaciones model.Reparaciones
	if err := db.Where("cliente_id = ?", cliente.ID).Order("id DESC").Find(&reparaciones).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	vista := make([]reparacionPublica, 0, len(reparaciones))
	for _, rep := range reparaciones {
		vista = append(vista, aVistaPublica(rep))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"cliente":      cliente.Nombre,
		"reparaciones": vista,
	})
}

// SeguimientoReparacion muestra el estado de una reparación por su código
// público, el que va impreso en el resguardo y en el QR.
func SeguimientoReparacion(c *fiber.Ctx) error {
	db := database.DB

	codigo := c.Params("codigo")
	var reparacion model.Reparacion
	if err := db.Where("codigo_publico = ?", codigo).First(&reparacion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, aVistaPublica(reparacion))
}

// SeguimientoQR genera el QR que apunta a la página de seguimiento.
func SeguimientoQR(c *fiber.Ctx) error {
	db := database.DB

	codigo := c.Params("codigo")
	var reparacion model.Reparacion
	if err := db.Where("codigo_publico = ?", codigo).First(&reparacion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}

	url := fmt.Sprintf("%s/seguimiento/%s", os.Getenv("APP_URL"), reparacion.CodigoPublico)
	qrBytes, err := utils.GenerateQRCode(url, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(qrBytes)
}

// PagoOk es la página de retorno tras un checkout correcto. El estado real
// lo fija el webhook; aquí solo se informa de lo que hay en base de datos.
func PagoOk(c *fiber.Ctx) error {
	db := database.DB

	idStr := c.Query("reparacion")
	reparacionId, err := strconv.Atoi(idStr)
	if err != nil || reparacionId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("reparacion invalida"))
	}

	var reparacion model.Reparacion
	if err := db.First(&reparacion, reparacionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}

	mensaje := "Estamos confirmando tu pago, recibirás un email con el recibo."
	if reparacion.EstadoPago == constants.PAGO_PAGADO {
		mensaje = "Pago confirmado. Gracias."
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"estadoPago": reparacion.EstadoPago,
		"mensaje":    mensaje,
	})
}
