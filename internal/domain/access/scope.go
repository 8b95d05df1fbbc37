package access

import "github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"

// Scope filtro por tienda que los repositorios aplican a toda consulta de una entidad con tienda.
// Global=true no añade predicado. Con Global=false se filtra por StoreID; 0 no coincide con ninguna fila.
type Scope struct {
	Global  bool
	StoreID int64
}

// Unrestricted scope sin filtro, para procesos internos (login, seed).
func Unrestricted() Scope { return Scope{Global: true} }

// ForStore scope limitado a una tienda.
func ForStore(storeID int64) Scope { return Scope{StoreID: storeID} }

// ReadScope visibilidad de lectura: global con READ_ALL o MANAGE_ALL.
func (c Caller) ReadScope() Scope {
	if c.Permissions.HasAny(entity.PermReadAll, entity.PermManageAll) {
		return Scope{Global: true}
	}
	return Scope{StoreID: c.Store()}
}

// ManageScope visibilidad de escritura: global solo con MANAGE_ALL.
func (c Caller) ManageScope() Scope {
	if c.Permissions.Has(entity.PermManageAll) {
		return Scope{Global: true}
	}
	return Scope{StoreID: c.Store()}
}

// Allows informa si una fila de la tienda storeID es visible en el scope.
func (s Scope) Allows(storeID int64) bool {
	return s.Global || (s.StoreID != 0 && s.StoreID == storeID)
}

// AllowsOptional igual que Allows para filas con tienda opcional; sin tienda solo es visible en global.
func (s Scope) AllowsOptional(storeID *int64) bool {
	if storeID == nil {
		return s.Global
	}
	return s.Allows(*storeID)
}
