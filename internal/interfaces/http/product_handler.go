package http

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/usecase"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para Product y su libro de stock.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	stock *usecase.StockUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stock *usecase.StockUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Listar productos visibles con su stock
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	out, err := h.uc.List(c.UserContext(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Modificar producto
// @Description  Las claves del cuerpo se validan contra la restricción de campos del rol
// @Description  (department manager: solo id e inStock). inStock es el valor objetivo.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	keys, err := payloadKeys(c.Body())
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return writeError(c, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput))
	}
	if err := validateStruct(&in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.uc.Update(c.UserContext(), caller, id, keys, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
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

// AttachCategories godoc
// @Summary      Asociar categorías (mismo pasillo)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.AttachCategoriesRequest  true  "categories"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/categories [post]
func (h *ProductHandler) AttachCategories(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AttachCategoriesRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.uc.AttachCategories(c.UserContext(), caller, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AttachSupplier godoc
// @Summary      Asociar proveedor con precio de compra
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.AttachSupplierRequest  true  "supplier, purchasePrice"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers [post]
func (h *ProductHandler) AttachSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AttachSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	if err := h.uc.AttachSupplier(c.UserContext(), caller, id, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddStock godoc
// @Summary      Registrar un asiento de stock (cantidad con signo)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.CreateStockRequest  true  "quantity"
// @Success      201   {object}  dto.StockResponse
// @Router       /api/products/{id}/stocks [post]
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.stock.AddEntry(c.UserContext(), caller, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStock godoc
// @Summary      Asientos de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/products/{id}/stocks [get]
func (h *ProductHandler) ListStock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	caller, _ := GetCaller(c)
	out, err := h.stock.List(c.UserContext(), caller, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
