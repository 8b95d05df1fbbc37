package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Role, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.Role, error)
	ExistsByName(ctx context.Context, name string, storeID *int64, excludeID int64) (bool, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id int64) error
	// CountIncoherentUsers cuenta los usuarios del rol cuya tienda no es storeID (para cambiar la tienda del rol).
	CountIncoherentUsers(ctx context.Context, roleID int64, storeID *int64) (int64, error)
}
