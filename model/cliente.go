package model

type Cliente struct {
	DTO
	Nombre    string `gorm:"not null" json:"nombre"`
	Telefono  string `gorm:"index" json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`

	Reparaciones []Reparacion `gorm:"foreignKey:ClienteId" json:"-"`
}

type Clientes []Cliente

type CreateClienteInput struct {
	Nombre    string `json:"nombre" form:"nombre" validate:"required,min=2,max=100"`
	Telefono  string `json:"telefono" form:"telefono" validate:"required,min=6,max=20"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Direccion string `json:"direccion" form:"direccion" validate:"omitempty,max=200"`
}

type EditClienteInput struct {
	Nombre    *string `json:"nombre" form:"nombre" validate:"omitempty,min=2,max=100"`
	Telefono  *string `json:"telefono" form:"telefono" validate:"omitempty,min=6,max=20"`
	Email     *string `json:"email" form:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion" form:"direccion" validate:"omitempty,max=200"`
}

type FilterCliente struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Telefono  string `json:"telefono"`
}
