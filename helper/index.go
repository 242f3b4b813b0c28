package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUsuarioByUsername(u string) (*model.Usuario, error) {
	db := database.DB
	var usuario model.Usuario
	if err := db.Where(&model.Usuario{Username: u}).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["usuarioId"] = tokenClaim.UsuarioId
	claims["rol"] = tokenClaim.Rol
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["usuarioId"] = tokenClaim.UsuarioId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// GetInfoUsuarioFromToken devuelve el claim del token ya validado por el
// middleware y si el usuario tiene rol de administrador.
func GetInfoUsuarioFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	u := c.Locals("user")
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false
	}

	usuarioIdFloat, _ := claims["usuarioId"].(float64)
	username, _ := claims["username"].(string)
	rol, _ := claims["rol"].(string)

	tokenClaim := model.TokenClaim{
		UsuarioId: uint(usuarioIdFloat),
		Username:  username,
		Rol:       rol,
	}

	return tokenClaim, rol == constants.ROLE_ADMIN
}
