package entity

import "time"

// User representa un usuario del back-office.
// StoreID solo puede ser nil para un usuario global (rol sin tienda).
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt
	FirstName    string
	LastName     string
	RoleID       int64
	StoreID      *int64
	AisleIDs     []int64
	RefreshToken string // sha256 hex del refresh token vigente; "" = sin sesión
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithRole usuario con su rol resuelto (login y emisión de tokens).
type UserWithRole struct {
	User
	Role Role
}
