package dto

import "time"

// CreateRoleRequest alta de rol. Global=true (solo super admin) crea un rol sin tienda.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Permissions []string `json:"permissions" validate:"required,dive,required"`
	StoreID     *int64   `json:"store" validate:"omitempty,gt=0"`
	Global      bool     `json:"global"`
}

// UpdateRoleRequest campos opcionales; nil = sin cambios.
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,required"`
	StoreID     *int64    `json:"store" validate:"omitempty,gt=0"`
	Global      *bool     `json:"global"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	Store       *IDRef    `json:"store"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
