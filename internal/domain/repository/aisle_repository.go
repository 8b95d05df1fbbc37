package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// AisleRepository define el puerto de persistencia para Aisle (DIP).
type AisleRepository interface {
	Create(ctx context.Context, aisle *entity.Aisle) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Aisle, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.Aisle, error)
	ExistsByName(ctx context.Context, storeID int64, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, aisle *entity.Aisle) error
	// Delete borrado físico; las categorías del pasillo caen en cascada.
	Delete(ctx context.Context, id int64) error
}
