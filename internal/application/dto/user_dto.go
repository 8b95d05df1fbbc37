package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName string  `json:"firstname" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastname" validate:"required,min=1,max=100"`
	RoleID    int64   `json:"role" validate:"required,gt=0"`
	StoreID   *int64  `json:"store" validate:"omitempty,gt=0"`
	AisleIDs  []int64 `json:"aisles" validate:"omitempty,dive,gt=0"`
}

// UpdateUserRequest campos opcionales; nil = sin cambios.
type UpdateUserRequest struct {
	Email     *string  `json:"email" validate:"omitempty,email"`
	Password  *string  `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName *string  `json:"firstname" validate:"omitempty,min=1,max=100"`
	LastName  *string  `json:"lastname" validate:"omitempty,min=1,max=100"`
	RoleID    *int64   `json:"role" validate:"omitempty,gt=0"`
	StoreID   *int64   `json:"store" validate:"omitempty,gt=0"`
	AisleIDs  *[]int64 `json:"aisles" validate:"omitempty,dive,gt=0"`
}

// UserResponse salida de un usuario (sin password ni refresh token).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Role      IDRef     `json:"role"`
	Store     *IDRef    `json:"store"`
	Aisles    []int64   `json:"aisles"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
