package entity

import "sort"

// Permission es una capacidad del catálogo cerrado. No se crean permisos en tiempo de ejecución.
type Permission string

// ResourceKind identifica el tipo de recurso al que aplica un permiso.
type ResourceKind string

const (
	ResourceAll      ResourceKind = "ALL"
	ResourceAisle    ResourceKind = "AISLE"
	ResourceBrand    ResourceKind = "BRAND"
	ResourceCategory ResourceKind = "CATEGORY"
	ResourceProduct  ResourceKind = "PRODUCT"
	ResourceRole     ResourceKind = "ROLE"
	ResourceStock    ResourceKind = "STOCK"
	ResourceStore    ResourceKind = "STORE"
	ResourceSupplier ResourceKind = "SUPPLIER"
	ResourceUser     ResourceKind = "USER"
)

const (
	PermReadAll   Permission = "READ_ALL"
	PermManageAll Permission = "MANAGE_ALL"

	PermReadAisle      Permission = "READ_AISLE"
	PermManageAisle    Permission = "MANAGE_AISLE"
	PermReadBrand      Permission = "READ_BRAND"
	PermManageBrand    Permission = "MANAGE_BRAND"
	PermReadCategory   Permission = "READ_CATEGORY"
	PermManageCategory Permission = "MANAGE_CATEGORY"
	PermReadProduct    Permission = "READ_PRODUCT"
	PermManageProduct  Permission = "MANAGE_PRODUCT"
	PermReadRole       Permission = "READ_ROLE"
	PermManageRole     Permission = "MANAGE_ROLE"
	PermReadStock      Permission = "READ_STOCK"
	PermManageStock    Permission = "MANAGE_STOCK"
	PermReadStore      Permission = "READ_STORE"
	PermManageStore    Permission = "MANAGE_STORE"
	PermReadSupplier   Permission = "READ_SUPPLIER"
	PermManageSupplier Permission = "MANAGE_SUPPLIER"
	PermReadUser       Permission = "READ_USER"
	PermManageUser     Permission = "MANAGE_USER"
)

// permissionEntry describe un permiso del catálogo: recurso y si es de gestión.
type permissionEntry struct {
	kind   ResourceKind
	manage bool
}

// catalog tabla estática Permission -> recurso, construida una sola vez.
var catalog = map[Permission]permissionEntry{
	PermReadAll:   {ResourceAll, false},
	PermManageAll: {ResourceAll, true},

	PermReadAisle:      {ResourceAisle, false},
	PermManageAisle:    {ResourceAisle, true},
	PermReadBrand:      {ResourceBrand, false},
	PermManageBrand:    {ResourceBrand, true},
	PermReadCategory:   {ResourceCategory, false},
	PermManageCategory: {ResourceCategory, true},
	PermReadProduct:    {ResourceProduct, false},
	PermManageProduct:  {ResourceProduct, true},
	PermReadRole:       {ResourceRole, false},
	PermManageRole:     {ResourceRole, true},
	PermReadStock:      {ResourceStock, false},
	PermManageStock:    {ResourceStock, true},
	PermReadStore:      {ResourceStore, false},
	PermManageStore:    {ResourceStore, true},
	PermReadSupplier:   {ResourceSupplier, false},
	PermManageSupplier: {ResourceSupplier, true},
	PermReadUser:       {ResourceUser, false},
	PermManageUser:     {ResourceUser, true},
}

// byKind índice inverso recurso -> (lectura, gestión).
var byKind = func() map[ResourceKind][2]Permission {
	m := make(map[ResourceKind][2]Permission, len(catalog)/2)
	for p, e := range catalog {
		pair := m[e.kind]
		if e.manage {
			pair[1] = p
		} else {
			pair[0] = p
		}
		m[e.kind] = pair
	}
	return m
}()

// Kind devuelve el recurso del permiso. ok=false si no pertenece al catálogo.
func (p Permission) Kind() (ResourceKind, bool) {
	e, ok := catalog[p]
	return e.kind, ok
}

// IsGlobal indica si el permiso es READ_ALL o MANAGE_ALL.
func (p Permission) IsGlobal() bool {
	return p == PermReadAll || p == PermManageAll
}

// ParsePermission valida una etiqueta contra el catálogo.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(s)
	_, ok := catalog[p]
	return p, ok
}

// ReadPermission devuelve READ_<kind>.
func ReadPermission(kind ResourceKind) Permission { return byKind[kind][0] }

// ManagePermission devuelve MANAGE_<kind>.
func ManagePermission(kind ResourceKind) Permission { return byKind[kind][1] }

// AllPermissions devuelve el catálogo completo en orden estable.
func AllPermissions() []Permission {
	out := make([]Permission, 0, len(catalog))
	for p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PermissionSet conjunto de permisos de un rol.
type PermissionSet map[Permission]struct{}

// NewPermissionSet construye un conjunto a partir de una lista (los duplicados se ignoran).
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// ParsePermissionSet convierte etiquetas en un conjunto; ok=false si alguna es desconocida.
func ParsePermissionSet(tags []string) (PermissionSet, bool) {
	s := make(PermissionSet, len(tags))
	for _, t := range tags {
		p, ok := ParsePermission(t)
		if !ok {
			return nil, false
		}
		s[p] = struct{}{}
	}
	return s, true
}

// Has informa si el conjunto contiene el permiso.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny informa si la intersección con perms no es vacía.
func (s PermissionSet) HasAny(perms ...Permission) bool {
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Slice devuelve los permisos ordenados.
func (s PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings devuelve las etiquetas ordenadas (para JWT y columnas TEXT[]).
func (s PermissionSet) Strings() []string {
	perms := s.Slice()
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
