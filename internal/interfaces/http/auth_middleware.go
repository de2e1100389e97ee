package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/pkg/jwt"
)

// LocalActor key de Fiber Locals con el usuario autenticado.
const LocalActor = "actor"

// AuthMiddleware valida el Bearer Token JWT cuando hay secreto configurado.
// Sin secreto la API es anónima. Las lecturas (GET, HEAD, OPTIONS) no exigen token,
// pero si llega uno válido se carga el actor igualmente.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtSecret == "" {
			return c.Next()
		}
		authHeader := c.Get(fiber.HeaderAuthorization)
		readOnly := isReadOnly(c.Method())
		if authHeader == "" {
			if readOnly {
				return c.Next()
			}
			return unauthorized(c, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			if readOnly {
				return c.Next()
			}
			return unauthorized(c, "formato: Bearer <token>")
		}
		claims, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			if readOnly {
				return c.Next()
			}
			return unauthorized(c, "token inválido o expirado")
		}
		c.Locals(LocalActor, claims.Actor())
		return c.Next()
	}
}

// GetActor devuelve el usuario autenticado o "" si la petición es anónima.
func GetActor(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalActor).(string)
	return s
}

func isReadOnly(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, msg, ""))
}
