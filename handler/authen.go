package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jordan-wright/email"
)

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		UserName string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}

	loginInput := new(LoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	if loginInput.UserName == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("username and password are required"))
	}

	usuario, err := helper.GetUsuarioByUsername(loginInput.UserName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if usuario == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_USERNAME, errors.New("username not exists"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, usuario.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}

	if !usuario.Activo {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("activo false"))
	}

	tokenClaim := model.TokenClaim{
		UsuarioId: usuario.ID,
		Username:  usuario.Username,
		Rol:       usuario.Rol,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false, // true al desplegar con HTTPS
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "login success",
		"usuario": fiber.Map{
			"id":       usuario.ID,
			"username": usuario.Username,
			"rol":      usuario.Rol,
		},
		"accessToken":  token,
		"refreshToken": refreshToken,
	})
}

func RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No se encontró el refresh token", nil)
	}

	token, err := helper.ParseToken(refreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token no válido o caducado", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Claims no válidos", nil)
	}

	usuarioIdFloat, ok := claims["usuarioId"].(float64)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "No se encontró usuarioId", nil)
	}

	var usuario model.Usuario
	if err := database.DB.First(&usuario, uint(usuarioIdFloat)).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, err)
	}

	tokenClaim := model.TokenClaim{
		UsuarioId: usuario.ID,
		Username:  usuario.Username,
		Rol:       usuario.Rol,
	}
	newAccessToken, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accessToken": newAccessToken,
	})
}

// CreateUsuario da de alta un técnico o administrador (solo admin).
func CreateUsuario(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputCreateUsuario").(model.CreateUsuarioInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	existente, err := helper.GetUsuarioByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existente != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "El usuario ya existe", nil, "username")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	usuario := model.Usuario{
		Username: input.Username,
		Password: hash,
		Email:    input.Email,
		Activo:   true,
		Rol:      input.Rol,
	}
	if err := db.Create(&usuario).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, usuario)
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB
	emailInput, ok := c.Locals("EmailForgotPassword").(model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	var usuario model.Usuario
	if err := db.Where("email = ?", emailInput.Email).First(&usuario).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No se encontró el usuario"})
	}

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo generar el token"})
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := model.PasswordResetToken{
		UsuarioId: usuario.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo guardar el token"})
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("APP_URL"), token)
	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{emailInput.Email}
	e.Subject = "Restablecer contraseña"
	e.Text = []byte(fmt.Sprintf("Haz clic en el enlace para restablecer tu contraseña: %s", resetLink))
	err := e.Send(os.Getenv("SMTP_HOST")+":587",
		smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_HOST")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo enviar el email"})
	}

	return c.JSON(fiber.Map{"message": "Enlace de restablecimiento enviado al email"})
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB
	resetInput, ok := c.Locals("ResetPassword").(model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ?", resetInput.Token, time.Now()).First(&resetToken).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token no válido o caducado"})
	}

	var usuario model.Usuario
	if err := db.First(&usuario, resetToken.UsuarioId).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No se encontró el usuario"})
	}

	hash, err := helper.HashPassword(resetInput.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	usuario.Password = hash
	if err := db.Save(&usuario).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No se pudo actualizar la contraseña"})
	}
	db.Delete(&resetToken)

	return c.JSON(fiber.Map{"message": "Contraseña restablecida correctamente"})
}
