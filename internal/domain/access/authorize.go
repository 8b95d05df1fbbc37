package access

import "github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"

// Authorize devuelve true si granted y required comparten al menos un permiso (semántica OR).
// Un required vacío no exige nada.
func Authorize(granted entity.PermissionSet, required []entity.Permission) bool {
	if len(required) == 0 {
		return true
	}
	return granted.HasAny(required...)
}

// ReadRequirement permisos que habilitan la lectura de un recurso.
func ReadRequirement(kind entity.ResourceKind) []entity.Permission {
	return []entity.Permission{
		entity.PermReadAll,
		entity.PermManageAll,
		entity.ReadPermission(kind),
		entity.ManagePermission(kind),
	}
}

// ManageRequirement permisos que habilitan la escritura de un recurso.
func ManageRequirement(kind entity.ResourceKind) []entity.Permission {
	return []entity.Permission{
		entity.PermManageAll,
		entity.ManagePermission(kind),
	}
}

// GlobalOnly exige MANAGE_ALL (alta y baja de tiendas).
func GlobalOnly() []entity.Permission {
	return []entity.Permission{entity.PermManageAll}
}
