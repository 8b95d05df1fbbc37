package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
// La implementación vive en infrastructure. Los métodos de lectura devuelven (nil, nil) si no hay fila.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Store, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	// Delete borrado físico; la base propaga en cascada a todo lo que cuelga de la tienda.
	Delete(ctx context.Context, id int64) error
}
