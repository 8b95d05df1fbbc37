package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand. Las marcas no tienen tienda.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	List(ctx context.Context) ([]*entity.Brand, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
