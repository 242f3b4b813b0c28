package model

import "time"

type Usuario struct {
	DTO
	Username string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password string `gorm:"not null" validate:"required,min=6,max=72" json:"-"`
	Email    string `json:"email"`
	Activo   bool   `gorm:"not null;default:true" json:"activo"`
	Rol      string `gorm:"not null;default:'TECNICO'" json:"rol"`
}

type Usuarios []Usuario

type CreateUsuarioInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"omitempty,email"`
	Rol      string `json:"rol" validate:"required,oneof=ADMIN TECNICO"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type PasswordResetToken struct {
	DTO
	UsuarioId uint      `gorm:"not null" json:"usuarioId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Usuario   Usuario   `gorm:"foreignKey:UsuarioId" json:"-"`
}
