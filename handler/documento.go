package handler

import (
	"fmt"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// GetDocumentoPDF genera el presupuesto o la factura de una reparación.
// El tipo se pasa por query: ?tipo=presupuesto (por defecto) o ?tipo=factura.
func GetDocumentoPDF(c *fiber.Ctx) error {
	db := database.DB

	reparacionId := c.Locals("inputId").(int)
	tipo := c.Query("tipo", "presupuesto")
	if tipo != "presupuesto" && tipo != "factura" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, fmt.Errorf("tipo de documento desconocido: %s", tipo))
	}

	rep, err := helper.GetReparacionConCliente(db, uint(reparacionId))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}

	// Una factura sin importe cobrado no tiene sentido fiscal.
	if tipo == "factura" && rep.EstadoPago != constants.PAGO_PAGADO {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Solo se factura una reparación pagada", nil)
	}
	if rep.Precio == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.REPARACION_SIN_PRECIO, nil)
	}

	pdfBytes, err := utils.GenerarDocumentoPDF(utils.DocumentoData{
		ReparacionId:    rep.ID,
		Dispositivo:     rep.Dispositivo,
		Estado:          rep.Estado,
		FechaEntrada:    rep.FechaEntrada,
		Precio:          *rep.Precio,
		Descripcion:     rep.Descripcion,
		ClienteNombre:   rep.Cliente.Nombre,
		ClienteTelefono: rep.Cliente.Telefono,
	}, tipo)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	filename := fmt.Sprintf("%s-%s-%05d.pdf", tipo, slug.Make(rep.Dispositivo), rep.ID)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
