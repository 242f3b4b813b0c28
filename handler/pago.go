package handler

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Errores de validación del pago público en autoservicio.
var (
	ErrEmailInvalido      = errors.New("email no valido")
	ErrImporteInvalido    = errors.New("la reparacion no tiene importe valido")
	ErrClienteSinEmail    = errors.New("el cliente no tiene email registrado")
	ErrEmailNoCoincide    = errors.New("el email no coincide con el del cliente")
	ErrPagosNoDisponibles = errors.New("procesador de pagos sin configurar")
)

// ValidarPagoPublico aplica, en orden y cortocircuitando, las comprobaciones
// de elegibilidad antes de crear la sesión de pago. Devuelve la reparación
// con su cliente y el importe en céntimos.
func ValidarPagoPublico(db *gorm.DB, reparacionId uint, emailEnviado string, procesadorConfigurado bool) (*model.Reparacion, int64, error) {
	emailEnviado = strings.TrimSpace(emailEnviado)
	if emailEnviado == "" || !strings.Contains(emailEnviado, "@") {
		return nil, 0, ErrEmailInvalido
	}

	rep, err := helper.GetReparacionConCliente(db, reparacionId)
	if err != nil {
		return nil, 0, err
	}

	if rep.EstadoPago == constants.PAGO_PAGADO {
		return rep, 0, helper.ErrYaPagada
	}

	if rep.Precio == nil || *rep.Precio <= 0 {
		return rep, 0, ErrImporteInvalido
	}

	if rep.Cliente.Email == "" {
		return rep, 0, ErrClienteSinEmail
	}

	// Factor de identidad del autoservicio: poseer el email del cliente.
	if !strings.EqualFold(emailEnviado, rep.Cliente.Email) {
		return rep, 0, ErrEmailNoCoincide
	}

	if !procesadorConfigurado {
		return rep, 0, ErrPagosNoDisponibles
	}

	return rep, MontoCentimos(*rep.Precio), nil
}

// PagarReparacionPublico inicia el pago online de una reparación desde la
// página pública de consulta. Sin sesión: el email enviado debe coincidir
// con el del cliente propietario.
func PagarReparacionPublico(c *fiber.Ctx) error {
	db := database.DB

	reparacionId, err := strconv.Atoi(c.Params("id"))
	if err != nil || reparacionId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
	}

	var input model.PagoPublicoInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	gateway := NewStripeGateway()

	rep, montoCentimos, err := ValidarPagoPublico(db, uint(reparacionId), input.ClienteEmail, gateway.Configured())
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailInvalido):
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.EMAIL_NO_VALIDO, err, "cliente_email")
		case errors.Is(err, helper.ErrReparacionNoEncontrada):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
		case errors.Is(err, helper.ErrYaPagada):
			// Informativo: el objetivo es no cobrar dos veces.
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
				"estadoPago": constants.PAGO_PAGADO,
				"message":    constants.REPARACION_YA_PAGADA,
			})
		case errors.Is(err, ErrImporteInvalido):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.PRECIO_NO_VALIDO, err)
		case errors.Is(err, ErrClienteSinEmail):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.CLIENTE_SIN_EMAIL, err)
		case errors.Is(err, ErrEmailNoCoincide):
			return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, constants.EMAIL_NO_COINCIDE, err, "cliente_email")
		case errors.Is(err, ErrPagosNoDisponibles):
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.PAGOS_NO_DISPONIBLES, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	checkout, err := gateway.CreateCheckoutSession(rep, strings.TrimSpace(input.ClienteEmail), montoCentimos)
	if err != nil {
		status, message := MapStripeError(err)
		log.Printf("Error de Stripe al crear checkout de reparación %d: %v", rep.ID, err)
		return utils.ErrorResponse(c, status, message, err)
	}

	// Registro de auditoría de la sesión creada
	pago := model.Pago{
		ReparacionId: rep.ID,
		SessionId:    checkout.SessionId,
		Monto:        float64(montoCentimos) / 100,
		Estado:       constants.PAGO_PENDIENTE,
		Email:        strings.TrimSpace(input.ClienteEmail),
	}
	if err := db.Create(&pago).Error; err != nil {
		log.Printf("No se pudo registrar el pago de la sesión %s: %v", checkout.SessionId, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"url":       checkout.Url,
		"sessionId": checkout.SessionId,
	})
}
