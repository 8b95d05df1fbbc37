package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// El scope se aplica a través del pasillo: category -> aisle -> store.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Category, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.Category, error)
	// ExistsByName unicidad global del nombre (no por tienda).
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}
