package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/auth"
	"github.com/jhoicas/Warehousing-api/internal/application/dto"
)

// AuthHandler maneja login, logout y datos de sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario o email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(userCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(userCtx(c))
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(userCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
