package handler

import (
	"fmt"
	"log"
	"math"
	"os"

	"taller_manager/constants"
	"taller_manager/model"

	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway encapsula el procesador de pagos hospedado.
type StripeGateway struct {
	Config model.StripeConfig
}

func NewStripeGateway() *StripeGateway {
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró .env, se usan variables de entorno del sistema")
	}
	return &StripeGateway{
		Config: model.StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			SuccessURL:    os.Getenv("APP_URL") + "/publico/pago-ok?reparacion=%d",
			CancelURL:     os.Getenv("APP_URL") + "/publico/consulta",
			Currency:      "eur",
		},
	}
}

// Configured indica si hay credencial de API para crear sesiones.
func (g *StripeGateway) Configured() bool {
	return g.Config.SecretKey != ""
}

// WebhookConfigured indica si hay secreto para verificar firmas de webhook.
func (g *StripeGateway) WebhookConfigured() bool {
	return g.Config.WebhookSecret != ""
}

// MontoCentimos convierte el precio en euros a céntimos (entero, redondeo
// al céntimo más cercano), que es la representación que exige Stripe.
func MontoCentimos(precio float64) int64 {
	return int64(math.Round(precio * 100))
}

// CreateCheckoutSession crea la sesión de pago hospedada para una reparación.
// Los metadatos son el único mecanismo de correlación cuando llega el webhook.
func (g *StripeGateway) CreateCheckoutSession(rep *model.Reparacion, email string, montoCentimos int64) (*model.CheckoutSession, error) {
	stripe.Key = g.Config.SecretKey

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(fmt.Sprintf(g.Config.SuccessURL, rep.ID)),
		CancelURL:     stripe.String(g.Config.CancelURL),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.Config.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Reparación #%d - %s", rep.ID, rep.Cliente.Nombre)),
					},
					UnitAmount: stripe.Int64(montoCentimos),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("reparacion_id", fmt.Sprintf("%d", rep.ID))
	params.AddMetadata("email", email)
	params.AddMetadata("cliente_nombre", rep.Cliente.Nombre)

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &model.CheckoutSession{SessionId: s.ID, Url: s.URL}, nil
}

// MapStripeError traduce los fallos del procesador a un estado HTTP y un
// mensaje para el usuario. Nunca se reintenta desde aquí.
func MapStripeError(err error) (int, string) {
	stripeErr, ok := err.(*stripe.Error)
	if !ok {
		return 502, constants.PROCESADOR_NO_DISPONIBLE
	}

	switch stripeErr.Type {
	case stripe.ErrorTypeCard:
		return 402, constants.TARJETA_RECHAZADA
	case stripe.ErrorTypeInvalidRequest:
		return 502, constants.PETICION_PAGO_NO_VALIDA
	}

	switch stripeErr.HTTPStatusCode {
	case 401:
		return 502, constants.CREDENCIALES_PROCESADOR
	case 429:
		return 503, constants.LIMITE_PROCESADOR
	}

	return 502, constants.PROCESADOR_NO_DISPONIBLE
}
