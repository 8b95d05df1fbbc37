package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Scores e ingredientes vacíos se completan con Open Food Facts.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	Price         decimal.Decimal `json:"price"`
	NutriScore    string          `json:"nutriScore" validate:"omitempty,oneof=A B C D E NOT-APPLICABLE"`
	EcoScore      string          `json:"ecoScore" validate:"omitempty,oneof=A B C D E NOT-APPLICABLE"`
	UnitPackaging string          `json:"unitPackaging" validate:"omitempty,max=50"`
	Threshold     int64           `json:"threshold" validate:"gte=0,lte=2147483647"`
	Ingredients   string          `json:"ingredients"`
	BrandID       int64           `json:"brand" validate:"omitempty,gt=0"`
	StoreID       *int64          `json:"store" validate:"omitempty,gt=0"`
	CategoryIDs   []int64         `json:"categories" validate:"omitempty,dive,gt=0"`
	InStock       int64           `json:"inStock" validate:"gte=0,lte=2147483647"`
}

// UpdateProductRequest campos opcionales; nil = sin cambios. InStock es el valor objetivo:
// la diferencia con el stock actual se registra en el libro.
type UpdateProductRequest struct {
	ID            *int64           `json:"id"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Code          *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Price         *decimal.Decimal `json:"price"`
	NutriScore    *string          `json:"nutriScore" validate:"omitempty,oneof=A B C D E NOT-APPLICABLE"`
	EcoScore      *string          `json:"ecoScore" validate:"omitempty,oneof=A B C D E NOT-APPLICABLE"`
	UnitPackaging *string          `json:"unitPackaging" validate:"omitempty,max=50"`
	Threshold     *int64           `json:"threshold" validate:"omitempty,gte=0,lte=2147483647"`
	Ingredients   *string          `json:"ingredients"`
	BrandID       *int64           `json:"brand" validate:"omitempty,gte=0"`
	InStock       *int64           `json:"inStock" validate:"omitempty,gte=0,lte=2147483647"`
}

// AttachCategoriesRequest categorías a asociar al producto (mismo pasillo).
type AttachCategoriesRequest struct {
	CategoryIDs []int64 `json:"categories" validate:"required,min=1,dive,gt=0"`
}

// AttachSupplierRequest proveedor con su precio de compra.
type AttachSupplierRequest struct {
	SupplierID    int64           `json:"supplier" validate:"required,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// ProductResponse salida de un producto con su stock calculado.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Price         decimal.Decimal `json:"price"`
	NutriScore    string          `json:"nutriScore"`
	EcoScore      string          `json:"ecoScore"`
	UnitPackaging string          `json:"unitPackaging"`
	Threshold     int64           `json:"threshold"`
	Ingredients   string          `json:"ingredients"`
	IsActive      bool            `json:"isActive"`
	Store         IDRef           `json:"store"`
	Brand         *IDRef          `json:"brand"`
	Categories    []int64         `json:"categories"`
	InStock       int64           `json:"inStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateStockRequest asiento del libro; negativo = salida o pendiente. Las cantidades caben en un INTEGER.
type CreateStockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,ne=0,gte=-2147483648,lte=2147483647"`
}

// StockResponse salida de un asiento.
type StockResponse struct {
	ID        int64     `json:"id"`
	Product   IDRef     `json:"product"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}
