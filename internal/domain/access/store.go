package access

import "github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"

// AssignStore decide la tienda con la que se etiqueta una escritura.
//   - Caller que no es super admin: siempre su propia tienda, se ignore lo que venga en la petición.
//   - Super admin: la tienda pedida; si no hay, la seleccionada con select-store; si tampoco, ErrMissingStore.
func AssignStore(c Caller, requested *int64) (int64, error) {
	if !c.IsSuperAdmin() {
		if c.StoreID == nil {
			return 0, domain.ErrMissingStore
		}
		return *c.StoreID, nil
	}
	if requested != nil && *requested > 0 {
		return *requested, nil
	}
	if c.StoreID != nil {
		return *c.StoreID, nil
	}
	return 0, domain.ErrMissingStore
}
