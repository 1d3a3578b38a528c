package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/pkg/jwt"
)

// Locals keys con los datos del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalClaims = "claims"
)

// AuthMiddleware valida el Bearer Token JWT, guarda los claims en c.Locals y el Actor
// (con IP y agente de usuario) en el contexto de la petición.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalClaims, claims)
		c.SetUserContext(ports.WithActor(c.UserContext(), ports.Actor{
			UserID:      claims.UserID,
			Username:    claims.Username,
			IsAdmin:     claims.IsAdmin,
			Permissions: claims.Permissions,
			CategoryIDs: claims.CategoryIDs,
			ProductIDs:  claims.ProductIDs,
			IPAddress:   c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
		}))
		return c.Next()
	}
}

// ClientInfo guarda IP y agente de usuario en el contexto para rutas públicas (login).
func ClientInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ports.ActorFrom(c.UserContext()); !ok {
			c.SetUserContext(ports.WithActor(c.UserContext(), ports.Actor{
				IPAddress: c.IP(),
				UserAgent: c.Get(fiber.HeaderUserAgent),
			}))
		}
		return c.Next()
	}
}

// RequireAdmin solo administradores. Debe ir después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if !claims.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol administrador"})
		}
		return c.Next()
	}
}

// RequirePermission pasa si el usuario tiene alguno de los permisos; los administradores siempre pasan.
func RequirePermission(codes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		for _, code := range codes {
			if claims.HasPermission(code) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "permiso requerido: " + strings.Join(codes, " o "),
		})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetClaims claims del token; nil en rutas sin autenticación.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}
