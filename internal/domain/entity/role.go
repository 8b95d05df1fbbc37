package entity

import (
	"strings"
	"time"
)

// Nombres de roles conocidos. Los tres primeros se crean al dar de alta una tienda;
// super admin no tiene tienda y se crea con el seed.
const (
	RoleSuperAdmin        = "super admin"
	RoleStoreManager      = "store manager"
	RolePurchasingManager = "purchasing manager"
	RoleDepartmentManager = "department manager"
)

// Role agrupa permisos con nombre; StoreID nil = rol usable en cualquier tienda.
type Role struct {
	ID          int64
	Name        string
	Permissions PermissionSet
	StoreID     *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission pertenencia simple al conjunto.
func (r *Role) HasPermission(p Permission) bool {
	if r == nil {
		return false
	}
	return r.Permissions.Has(p)
}

// IsSuperAdmin informa si es el rol global de plataforma: nombre reservado, sin tienda y con MANAGE_ALL.
func (r *Role) IsSuperAdmin() bool {
	return r != nil && r.Name == RoleSuperAdmin && r.StoreID == nil && r.Permissions.Has(PermManageAll)
}

// IsReservedRoleName informa si el nombre pertenece al rol de plataforma; solo un rol global puede llevarlo.
func IsReservedRoleName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), RoleSuperAdmin)
}

// StarterRole plantilla de rol creada con cada tienda.
type StarterRole struct {
	Name        string
	Permissions PermissionSet
}

// StarterRoles devuelve el juego inicial de roles de una tienda nueva.
func StarterRoles() []StarterRole {
	return []StarterRole{
		{
			Name: RoleStoreManager,
			Permissions: NewPermissionSet(
				PermReadStore, PermManageStore,
				PermReadAisle, PermManageAisle,
				PermReadCategory, PermManageCategory,
				PermReadBrand, PermManageBrand,
				PermReadProduct, PermManageProduct,
				PermReadStock, PermManageStock,
				PermReadSupplier, PermManageSupplier,
				PermReadRole, PermManageRole,
				PermReadUser, PermManageUser,
			),
		},
		{
			Name: RolePurchasingManager,
			Permissions: NewPermissionSet(
				PermReadAisle, PermReadCategory,
				PermReadBrand, PermManageBrand,
				PermReadProduct, PermManageProduct,
				PermReadStock, PermManageStock,
				PermReadSupplier, PermManageSupplier,
			),
		},
		{
			Name: RoleDepartmentManager,
			Permissions: NewPermissionSet(
				PermReadAisle, PermReadCategory, PermReadBrand,
				PermReadProduct, PermManageProduct,
				PermReadStock, PermReadSupplier,
			),
		},
	}
}

// SuperAdminPermissions permisos del rol global.
func SuperAdminPermissions() PermissionSet {
	return NewPermissionSet(PermReadAll, PermManageAll)
}
