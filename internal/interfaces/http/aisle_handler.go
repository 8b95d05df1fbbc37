package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/usecase"
)

// AisleHandler maneja las peticiones HTTP para Aisle.
type AisleHandler struct {
	uc *usecase.AisleUseCase
}

// NewAisleHandler construye el handler.
func NewAisleHandler(uc *usecase.AisleUseCase) *AisleHandler {
	return &AisleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pasillo
// @Tags         aisles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAisleRequest  true  "Datos"
// @Success      201   {object}  dto.AisleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/aisles [post]
func (h *AisleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAisleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.uc.Create(c.UserContext(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pasillos visibles
// @Tags         aisles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AisleResponse
// @Router       /api/aisles [get]
func (h *AisleHandler) List(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	out, err := h.uc.List(c.UserContext(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pasillo
// @Tags         aisles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.AisleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/aisles/{id} [get]
func (h *AisleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.uc.Get(c.UserContext(), caller, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar pasillo
// @Tags         aisles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateAisleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AisleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/aisles/{id} [patch]
func (h *AisleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateAisleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.uc.Update(c.UserContext(), caller, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar pasillo (en cascada sus categorías)
// @Tags         aisles
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/aisles/{id} [delete]
func (h *AisleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	if err := h.uc.Delete(c.UserContext(), caller, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
