package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/auth"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
)

// HeaderRefreshToken cabecera con el refresh token en POST /api/auth/refresh.
const HeaderRefreshToken = "refresh-token"

// AuthHandler maneja login, refresh, logout, select-store y me.
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
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Rotar el refresh token
// @Tags         auth
// @Produce      json
// @Param        refresh-token  header  string  true  "refresh token vigente"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	presented := c.Get(HeaderRefreshToken)
	if presented == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "cabecera refresh-token requerida"})
	}
	out, err := h.uc.Refresh(c.UserContext(), presented)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (invalida el refresh token)
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	if err := h.uc.Logout(c.UserContext(), caller); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectStore godoc
// @Summary      Elegir la tienda de trabajo (super admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectStoreRequest  true  "store"
// @Success      200   {object}  dto.TokenResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/select-store [post]
func (h *AuthHandler) SelectStore(c *fiber.Ctx) error {
	var in dto.SelectStoreRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.uc.SelectStore(c.UserContext(), caller, in.StoreID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	out, err := h.uc.Me(c.UserContext(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
