package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// StockRepository libro de existencias: solo inserta asientos, nunca sobrescribe.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Create(ctx context.Context, entry *entity.Stock) error
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Stock, error)
	SumByProduct(ctx context.Context, productID int64) (int64, error)
}
