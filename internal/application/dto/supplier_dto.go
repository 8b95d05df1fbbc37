package dto

import "time"

// CreateSupplierRequest alta de proveedor. Con SIRET, la dirección vacía se completa con el registro.
type CreateSupplierRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Address  string `json:"address" validate:"omitempty,max=300"`
	Postcode string `json:"postcode" validate:"omitempty,max=10"`
	City     string `json:"city" validate:"omitempty,max=100"`
	Contact  string `json:"contact" validate:"omitempty,max=200"`
	Siren    string `json:"siren" validate:"omitempty,len=9,numeric"`
	Siret    string `json:"siret" validate:"omitempty,len=14,numeric"`
	StoreID  *int64 `json:"store" validate:"omitempty,gt=0"`
}

// UpdateSupplierRequest campos opcionales; nil = sin cambios.
type UpdateSupplierRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	Postcode *string `json:"postcode" validate:"omitempty,max=10"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Contact  *string `json:"contact" validate:"omitempty,max=200"`
	Siren    *string `json:"siren" validate:"omitempty,len=9,numeric"`
	Siret    *string `json:"siret" validate:"omitempty,len=14,numeric"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Postcode  string    `json:"postcode"`
	City      string    `json:"city"`
	Contact   string    `json:"contact"`
	Siren     string    `json:"siren"`
	Siret     string    `json:"siret"`
	IsActive  bool      `json:"isActive"`
	Store     IDRef     `json:"store"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
