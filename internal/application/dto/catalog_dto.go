package dto

import "time"

// CreateAisleRequest alta de pasillo.
type CreateAisleRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	StoreID *int64 `json:"store" validate:"omitempty,gt=0"`
}

// UpdateAisleRequest renombrado de pasillo.
type UpdateAisleRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AisleResponse salida de un pasillo.
type AisleResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Store     IDRef     `json:"store"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest alta de categoría. Sin pasillo solo para llamadores globales.
type CreateCategoryRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	AisleID *int64 `json:"aisle" validate:"omitempty,gt=0"`
}

// UpdateCategoryRequest renombrado de categoría (el pasillo no cambia tras el alta).
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Aisle     *IDRef    `json:"aisle"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBrandRequest alta de marca.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
