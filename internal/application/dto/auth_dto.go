package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse par de tokens. RefreshToken vacío cuando solo se re-emite el access token (select-store).
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SelectStoreRequest tienda con la que trabajará el super admin.
type SelectStoreRequest struct {
	StoreID int64 `json:"store" validate:"required,gt=0"`
}

// RoleClaimResponse rol tal como viaja en el token.
type RoleClaimResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// MeResponse usuario autenticado con su rol y la tienda efectiva.
type MeResponse struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"firstname"`
	LastName  string            `json:"lastname"`
	Role      RoleClaimResponse `json:"role"`
	Store     *IDRef            `json:"store"`
	Aisles    []int64           `json:"aisles"`
}
