package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"

	"github.com/gofiber/fiber/v2"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhookApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)
	database.DB = newTestDB(t)

	app := fiber.New()
	app.Post("/webhook", StripeWebhook)
	return app
}

// firmarPayload construye la cabecera Stripe-Signature con el esquema
// t=<timestamp>,v1=<hmac-sha256 de "<timestamp>.<payload>">.
func firmarPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventoCheckoutCompletado(reparacionId uint, amountTotal int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"amount_total": %d,
				"metadata": {"reparacion_id": "%d", "email": "carlos@example.com"}
			}
		}
	}`, amountTotal, reparacionId))
}

func entregarEvento(t *testing.T, app *fiber.App, payload []byte, firma string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if firma != "" {
		req.Header.Set("Stripe-Signature", firma)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("no se pudo entregar el evento: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func TestWebhookSinSecretoConfigurado(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	database.DB = newTestDB(t)

	app := fiber.New()
	app.Post("/webhook", StripeWebhook)

	payload := eventoCheckoutCompletado(1, 1999)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, testWebhookSecret))
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, se esperaba 400", status)
	}
	if body["status"] != "misconfigured" {
		t.Errorf("status del cuerpo = %v, se esperaba misconfigured", body["status"])
	}
}

func TestWebhookSinFirma(t *testing.T) {
	app := newWebhookApp(t)
	precio := 19.99
	rep := sembrarReparacion(t, database.DB, "", &precio)

	status, _ := entregarEvento(t, app, eventoCheckoutCompletado(rep.ID, 1999), "")
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, se esperaba 400", status)
	}

	var guardada model.Reparacion
	database.DB.First(&guardada, rep.ID)
	if guardada.EstadoPago != constants.PAGO_PENDIENTE {
		t.Errorf("una entrega sin firma mutó el estado de pago a %q", guardada.EstadoPago)
	}
}

func TestWebhookFirmaInvalida(t *testing.T) {
	app := newWebhookApp(t)
	precio := 19.99
	rep := sembrarReparacion(t, database.DB, "", &precio)

	payload := eventoCheckoutCompletado(rep.ID, 1999)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, "whsec_otro_secreto"))
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, se esperaba 400", status)
	}
	if body["status"] != "invalid_signature" {
		t.Errorf("status del cuerpo = %v, se esperaba invalid_signature", body["status"])
	}

	var guardada model.Reparacion
	database.DB.First(&guardada, rep.ID)
	if guardada.EstadoPago != constants.PAGO_PENDIENTE {
		t.Errorf("una firma inválida mutó el estado de pago a %q", guardada.EstadoPago)
	}
}

func TestWebhookEventoIgnorado(t *testing.T) {
	app := newWebhookApp(t)

	payload := []byte(`{
		"id": "evt_test_2",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "payment_intent.succeeded",
		"data": {"object": {}}
	}`)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, testWebhookSecret))
	if status != fiber.StatusOK {
		t.Errorf("status = %d, se esperaba 200", status)
	}
	if body["status"] != "ignored" {
		t.Errorf("status del cuerpo = %v, se esperaba ignored", body["status"])
	}
}

func TestWebhookSinMetadata(t *testing.T) {
	app := newWebhookApp(t)

	payload := []byte(`{
		"id": "evt_test_3",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_3", "object": "checkout.session", "amount_total": 1999}}
	}`)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, testWebhookSecret))
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, se esperaba 400", status)
	}
	if body["status"] != "missing_metadata" {
		t.Errorf("status del cuerpo = %v, se esperaba missing_metadata", body["status"])
	}
}

func TestWebhookReparacionDesconocida(t *testing.T) {
	app := newWebhookApp(t)

	payload := eventoCheckoutCompletado(9999, 1999)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, testWebhookSecret))
	if status != fiber.StatusNotFound {
		t.Errorf("status = %d, se esperaba 404", status)
	}
	if body["status"] != "unknown_ticket" {
		t.Errorf("status del cuerpo = %v, se esperaba unknown_ticket", body["status"])
	}
}

func TestWebhookPagoCompletado(t *testing.T) {
	app := newWebhookApp(t)
	precio := 19.99
	rep := sembrarReparacion(t, database.DB, "", &precio)

	payload := eventoCheckoutCompletado(rep.ID, 1999)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, testWebhookSecret))
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, se esperaba 200 (cuerpo: %v)", status, body)
	}
	if body["status"] != "ok" {
		t.Errorf("status del cuerpo = %v, se esperaba ok", body["status"])
	}

	var guardada model.Reparacion
	database.DB.First(&guardada, rep.ID)
	if guardada.EstadoPago != constants.PAGO_PAGADO {
		t.Errorf("estado de pago = %q, se esperaba PAGADO", guardada.EstadoPago)
	}
	if guardada.MetodoPago == nil || *guardada.MetodoPago != constants.METODO_PAGO_STRIPE {
		t.Errorf("método de pago = %v, se esperaba %q", guardada.MetodoPago, constants.METODO_PAGO_STRIPE)
	}
	if guardada.FechaPago == nil {
		t.Error("la fecha de pago no se registró")
	}
}

func TestWebhookEntregaDuplicada(t *testing.T) {
	app := newWebhookApp(t)
	precio := 50.0
	rep := sembrarReparacion(t, database.DB, "", &precio)
	if _, err := helper.MarcarPagada(database.DB, rep.ID, "Efectivo"); err != nil {
		t.Fatalf("no se pudo marcar pagada: %v", err)
	}
	var antes model.Reparacion
	database.DB.First(&antes, rep.ID)

	// La redelivery de Stripe debe confirmarse con 200 sin tocar nada.
	payload := eventoCheckoutCompletado(rep.ID, 5000)
	status, body := entregarEvento(t, app, payload, firmarPayload(payload, testWebhookSecret))
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", status)
	}
	if body["status"] != "already_processed" {
		t.Errorf("status del cuerpo = %v, se esperaba already_processed", body["status"])
	}

	var despues model.Reparacion
	database.DB.First(&despues, rep.ID)
	if despues.MetodoPago == nil || *despues.MetodoPago != "Efectivo" {
		t.Errorf("el método original cambió a %v", despues.MetodoPago)
	}
	if despues.FechaPago == nil || !despues.FechaPago.Equal(*antes.FechaPago) {
		t.Errorf("la fecha de pago original cambió")
	}
}
