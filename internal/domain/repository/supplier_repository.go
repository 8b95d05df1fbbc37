package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Supplier, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.Supplier, error)
	ExistsByName(ctx context.Context, storeID int64, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Deactivate(ctx context.Context, id int64) error
}
