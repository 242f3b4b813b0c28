package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeWebhook recibe la notificación asíncrona de pago completado. Es la
// frontera de confianza: nada del payload se usa sin verificar la firma.
// La redelivery la gestiona Stripe: 200 detiene los reintentos, 500 los invita.
func StripeWebhook(c *fiber.Ctx) error {
	gateway := NewStripeGateway()

	// Sin secreto configurado no se puede verificar nada: rechazar siempre,
	// nunca aceptar eventos sin firma comprobada.
	if !gateway.WebhookConfigured() {
		log.Println("Webhook de Stripe sin STRIPE_WEBHOOK_SECRET configurado")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "misconfigured"})
	}

	sigHeader := c.Get("Stripe-Signature")
	if sigHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "missing_signature"})
	}

	event, err := webhook.ConstructEvent(c.Body(), sigHeader, gateway.Config.WebhookSecret)
	if err != nil {
		log.Printf("Firma de webhook no válida: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "invalid_signature"})
	}

	// Cualquier otro tipo de evento se confirma con 200 para que Stripe
	// deje de reenviarlo, pero no dispara lógica de negocio.
	if event.Type != "checkout.session.completed" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ignored", "type": string(event.Type)})
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		log.Printf("No se pudo deserializar checkout.session.completed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "bad_payload"})
	}

	idStr := cs.Metadata["reparacion_id"]
	if idStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "missing_metadata"})
	}
	reparacionId, err := strconv.Atoi(idStr)
	if err != nil || reparacionId <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "missing_metadata"})
	}

	db := database.DB
	rep, err := helper.GetReparacionConCliente(db, uint(reparacionId))
	if err != nil {
		if errors.Is(err, helper.ErrReparacionNoEncontrada) {
			// Inconsistencia de datos que merece salir a la luz.
			log.Printf("Webhook para reparación inexistente %d (sesión %s)", reparacionId, cs.ID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "unknown_ticket"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error"})
	}

	// Guarda de idempotencia: Stripe puede entregar el mismo evento varias
	// veces y dos entregas pueden correr a la vez. Si ya está pagada, no-op.
	if rep.EstadoPago == constants.PAGO_PAGADO {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "already_processed"})
	}

	// Contraste de importes: se registra la discrepancia pero no se bloquea
	// el marcado, el evento ya está firmado y verificado.
	if rep.Precio != nil && cs.AmountTotal != MontoCentimos(*rep.Precio) {
		log.Printf("Importe del webhook (%d) distinto del precio actual (%d) en reparación %d",
			cs.AmountTotal, MontoCentimos(*rep.Precio), rep.ID)
	}

	pagada, err := helper.MarcarPagada(db, rep.ID, constants.METODO_PAGO_STRIPE)
	if err != nil {
		if errors.Is(err, helper.ErrYaPagada) {
			// Otra entrega ganó la carrera entre la lectura y la escritura.
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "already_processed"})
		}
		// 500 para que Stripe reintente: el evento es válido pero aún no se
		// ha aplicado.
		log.Printf("Error al marcar pagada la reparación %d desde webhook: %v", rep.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error"})
	}

	// Cierre del registro de auditoría de la sesión
	if cs.ID != "" {
		db.Model(&model.Pago{}).Where("session_id = ?", cs.ID).Update("estado", constants.PAGO_PAGADO)
	}

	enviarReciboPago(rep, pagada)
	PublishDashboardEvent(fiber.Map{
		"tipo":         "pago_recibido",
		"reparacionId": rep.ID,
		"metodo":       constants.METODO_PAGO_STRIPE,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// enviarReciboPago manda al cliente el recibo con la factura y el QR de
// seguimiento adjuntos (async, no bloquea la respuesta al webhook).
func enviarReciboPago(rep *model.Reparacion, pagada *model.Reparacion) {
	if rep.Cliente.Email == "" {
		return
	}

	seguimiento := fmt.Sprintf("%s/seguimiento/%s", os.Getenv("APP_URL"), rep.CodigoPublico)

	var adjuntos []utils.Attachment
	if rep.Precio != nil {
		pdfBytes, err := utils.GenerarDocumentoPDF(utils.DocumentoData{
			ReparacionId:    rep.ID,
			Dispositivo:     rep.Dispositivo,
			Estado:          rep.Estado,
			FechaEntrada:    rep.FechaEntrada,
			Precio:          *rep.Precio,
			Descripcion:     rep.Descripcion,
			ClienteNombre:   rep.Cliente.Nombre,
			ClienteTelefono: rep.Cliente.Telefono,
		}, "factura")
		if err != nil {
			log.Printf("Error al generar factura para el recibo: %v", err)
		} else {
			adjuntos = append(adjuntos, utils.Attachment{
				Filename: fmt.Sprintf("factura-%s-%05d.pdf", slug.Make(rep.Dispositivo), rep.ID),
				Data:     pdfBytes,
			})
		}
	}

	if qrBytes, err := utils.GenerateQRCode(seguimiento, 256); err == nil {
		adjuntos = append(adjuntos, utils.Attachment{
			Filename: fmt.Sprintf("seguimiento-%05d.png", rep.ID),
			Data:     qrBytes,
		})
	}

	importe := 0.0
	if rep.Precio != nil {
		importe = *rep.Precio
	}
	fechaPago := ""
	if pagada != nil && pagada.FechaPago != nil {
		fechaPago = pagada.FechaPago.Format("02/01/2006")
	}

	utils.SendReciboPagoEmail(rep.Cliente.Email, utils.ReciboPagoData{
		ReparacionId:   rep.ID,
		ClienteNombre:  rep.Cliente.Nombre,
		Dispositivo:    rep.Dispositivo,
		Importe:        importe,
		MetodoPago:     constants.METODO_PAGO_STRIPE,
		FechaPago:      fechaPago,
		SeguimientoUrl: seguimiento,
	}, adjuntos)
}
