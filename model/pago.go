package model

import "time"

// Pago registra cada sesión de checkout creada y su desenlace. La autoridad
// sobre si una reparación está pagada sigue siendo reparaciones.estado_pago.
type Pago struct {
	DTO
	ReparacionId uint    `gorm:"not null;index" json:"reparacionId"`
	SessionId    string  `gorm:"uniqueIndex" json:"sessionId"`
	Monto        float64 `gorm:"not null" json:"monto"`
	Estado       string  `gorm:"default:PENDIENTE" json:"estado"`
	Email        string  `json:"email"`

	Reparacion Reparacion `gorm:"foreignKey:ReparacionId" json:"-"`
}

type Pagos []Pago

// CheckoutSession es el resultado efímero que se devuelve al cliente público.
type CheckoutSession struct {
	SessionId string `json:"sessionId"`
	Url       string `json:"url"`
}

// StripeConfig agrupa las credenciales del procesador (ver handler.NewStripeGateway).
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

type FechaPagoRango struct {
	Desde *time.Time `json:"desde"`
	Hasta *time.Time `json:"hasta"`
}
