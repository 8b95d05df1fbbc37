package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// InStock y CategoryIDs se cargan en cada lectura.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, scope access.Scope, id int64) (*entity.Product, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.Product, error)
	ListActiveByStore(ctx context.Context, storeID int64) ([]*entity.Product, error)
	ExistsByCode(ctx context.Context, storeID int64, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	// Deactivate borrado lógico (is_active = false).
	Deactivate(ctx context.Context, id int64) error

	// ReferenceCategory categoría asociada de mayor id; ok=false si el producto no tiene categorías.
	ReferenceCategory(ctx context.Context, productID int64) (category *entity.Category, ok bool, err error)
	AttachCategory(ctx context.Context, productID, categoryID int64) error
	AttachSupplier(ctx context.Context, link *entity.ProductSupplier) error
}
