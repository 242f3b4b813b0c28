package model

import "time"

type Reparacion struct {
	DTO
	ClienteId   uint   `gorm:"not null;index" json:"clienteId"`
	Dispositivo string `gorm:"not null" json:"dispositivo"`
	Descripcion string `json:"descripcion"`

	// Estado del flujo de trabajo: vocabulario abierto (Pendiente, En curso,
	// Terminado, Entregado...). Solo se clasifica activa/cerrada.
	Estado string `gorm:"not null;default:'Pendiente'" json:"estado"`

	FechaEntrada time.Time  `json:"fechaEntrada"`
	FechaSalida  *time.Time `json:"fechaSalida"`

	// Precio en euros, nulo hasta que el técnico lo tasa.
	Precio *float64 `json:"precio"`

	// Estado de pago: PENDIENTE o PAGADO. PAGADO es terminal.
	EstadoPago string     `gorm:"not null;default:'PENDIENTE'" json:"estadoPago"`
	FechaPago  *time.Time `json:"fechaPago"`
	MetodoPago *string    `json:"metodoPago"`

	// Código para el seguimiento público sin sesión.
	CodigoPublico string `gorm:"size:20;uniqueIndex" json:"codigoPublico"`

	Cliente Cliente          `gorm:"foreignKey:ClienteId" json:"-"`
	Fotos   []ReparacionFoto `gorm:"foreignKey:ReparacionId" json:"fotos,omitempty"`
}

type Reparaciones []Reparacion

type ReparacionFoto struct {
	DTO
	ReparacionId uint   `gorm:"not null;index" json:"reparacionId"`
	Url          string `gorm:"not null" json:"url"`
	PublicId     string `json:"publicId"`
}

type CreateReparacionInput struct {
	ClienteId   uint     `json:"clienteId" form:"cliente_id" validate:"required,gt=0"`
	Dispositivo string   `json:"dispositivo" form:"dispositivo" validate:"required,min=2,max=100"`
	Descripcion string   `json:"descripcion" form:"descripcion" validate:"omitempty,max=2000"`
	Estado      string   `json:"estado" form:"estado" validate:"omitempty,max=50"`
	Precio      *float64 `json:"precio" form:"precio" validate:"omitempty,gte=0"`
}

type EditReparacionInput struct {
	ClienteId   *uint      `json:"clienteId" form:"cliente_id" validate:"omitempty,gt=0"`
	Dispositivo *string    `json:"dispositivo" form:"dispositivo" validate:"omitempty,min=2,max=100"`
	Descripcion *string    `json:"descripcion" form:"descripcion" validate:"omitempty,max=2000"`
	Estado      *string    `json:"estado" form:"estado" validate:"omitempty,max=50"`
	Precio      *float64   `json:"precio" form:"precio" validate:"omitempty,gte=0"`
	FechaSalida *time.Time `json:"fechaSalida" validate:"omitempty"`
}

type MarcarPagadoInput struct {
	MetodoPago string `json:"metodo_pago" form:"metodo_pago" validate:"required,min=2,max=50"`
}

type PagoPublicoInput struct {
	ClienteEmail string `json:"cliente_email" form:"cliente_email"`
}

type FilterReparacion struct {
	Pagination
	SearchKey  string `json:"searchKey"`
	Estado     string `json:"estado"`
	EstadoPago string `json:"estadoPago"`
	ClienteId  *uint  `json:"clienteId"`
}
