package dto

import "time"

// CreateStoreRequest alta de tienda. Dirección vacía se completa con el registro de empresas.
type CreateStoreRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Address  string `json:"address" validate:"omitempty,max=300"`
	Postcode string `json:"postcode" validate:"omitempty,max=10"`
	City     string `json:"city" validate:"omitempty,max=100"`
	Siren    string `json:"siren" validate:"required,len=9,numeric"`
	Siret    string `json:"siret" validate:"required,len=14,numeric"`
}

// UpdateStoreRequest campos opcionales; nil = sin cambios.
type UpdateStoreRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	Postcode *string `json:"postcode" validate:"omitempty,max=10"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Siren    *string `json:"siren" validate:"omitempty,len=9,numeric"`
	Siret    *string `json:"siret" validate:"omitempty,len=14,numeric"`
	IsActive *bool   `json:"isActive"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Postcode  string    `json:"postcode"`
	City      string    `json:"city"`
	Siren     string    `json:"siren"`
	Siret     string    `json:"siret"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
