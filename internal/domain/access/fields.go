package access

import (
	"fmt"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// Operaciones sujetas a restricción de campos.
const (
	OpProductUpdate = "product.update"
)

// fieldRestrictions rol -> operación -> campos permitidos en el payload.
// Un rol u operación ausente no tiene restricción.
var fieldRestrictions = map[string]map[string]map[string]struct{}{
	entity.RoleDepartmentManager: {
		OpProductUpdate: {"id": {}, "inStock": {}},
	},
}

// CheckFields verifica que todas las claves del payload estén permitidas para el rol en la operación.
// Devuelve domain.ErrFieldNotAllowed (envuelto con el nombre del campo) al primer campo no permitido.
func CheckFields(c Caller, operation string, payloadKeys []string) error {
	ops, ok := fieldRestrictions[c.RoleName]
	if !ok {
		return nil
	}
	allowed, ok := ops[operation]
	if !ok {
		return nil
	}
	for _, k := range payloadKeys {
		if _, ok := allowed[k]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrFieldNotAllowed, k)
		}
	}
	return nil
}
