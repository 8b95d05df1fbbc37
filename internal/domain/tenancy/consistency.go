// Package tenancy reglas de consistencia multi-tienda evaluadas en la misma transacción que la escritura.
// La migración las replica como CHECK de PostgreSQL (valid_role_store, same_aisle).
package tenancy

// ValidRoleStore el rol debe ser de la misma tienda que el usuario o no tener tienda.
func ValidRoleStore(roleStore, userStore *int64) bool {
	if roleStore == nil {
		return true
	}
	return userStore != nil && *roleStore == *userStore
}

// SameAisle decide si una categoría con pasillo newAisle puede asociarse a un producto.
// hasExisting=false: el producto no tiene categorías y se acepta cualquiera.
// Si tiene, existingAisle es el pasillo de la categoría de referencia (la de mayor id);
// los pasillos nulos se comparan como IS NOT DISTINCT FROM.
func SameAisle(existingAisle *int64, hasExisting bool, newAisle *int64) bool {
	if !hasExisting {
		return true
	}
	return sameOptional(existingAisle, newAisle)
}

// AislesCoherent verifica una lista completa de pasillos (para asociar varias categorías a la vez).
func AislesCoherent(aisles []*int64) bool {
	for i := 1; i < len(aisles); i++ {
		if !sameOptional(aisles[0], aisles[i]) {
			return false
		}
	}
	return true
}

func sameOptional(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
