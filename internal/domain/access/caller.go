// Package access contiene el evaluador de autorización por tienda: quién llama,
// qué permisos exige cada operación, qué filas puede ver y a qué tienda se asigna una escritura.
package access

import "github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"

// Caller contexto explícito del usuario que hace la petición, reconstruido desde el access token.
// Se pasa por parámetro a cada caso de uso; nunca se guarda en estado global.
type Caller struct {
	UserID      int64
	Email       string
	RoleID      int64
	RoleName    string
	Permissions entity.PermissionSet
	StoreID     *int64 // nil = sin tienda (o super admin sin tienda seleccionada)
	AisleIDs    []int64
}

// IsSuperAdmin informa si el rol del caller es el rol global de plataforma.
// El nombre solo no basta: el rol tiene que llevar MANAGE_ALL, que ningún rol de tienda puede recibir.
func (c Caller) IsSuperAdmin() bool {
	return c.RoleName == entity.RoleSuperAdmin && c.Permissions.Has(entity.PermManageAll)
}

// Store devuelve el id de tienda del caller o 0 si no tiene.
func (c Caller) Store() int64 {
	if c.StoreID == nil {
		return 0
	}
	return *c.StoreID
}

// Can aplica Authorize sobre los permisos del caller.
func (c Caller) Can(required ...entity.Permission) bool {
	return Authorize(c.Permissions, required)
}
