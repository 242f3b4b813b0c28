package middleware

import (
	"errors"
	"os"
	"strings"

	"taller_manager/constants"
	"taller_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			// check header Authorization: Bearer xxx
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// RequireRole comprueba el rol exigido por la ruta antes de entrar en el
// handler. El rol requerido queda declarado en el router, no dentro de la
// lógica de negocio.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.ErrorResponse(c, 401, "Invalid token", errors.New("invalid claims"))
		}

		rol, _ := claims["rol"].(string)
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}

		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("rol "+rol))
	}
}
