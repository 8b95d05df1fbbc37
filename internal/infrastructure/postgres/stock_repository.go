package postgres

import (
	"context"
	"fmt"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo libro de existencias sobre PostgreSQL. Usable con pool o tx (Querier).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create inserta un asiento; quantity puede ser negativa.
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO stock (product_id, quantity) VALUES ($1, $2) RETURNING id, created_at`,
		s.ProductID, s.Quantity,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return mapWriteError("insert stock", err)
	}
	return nil
}

// ListByProduct asientos del producto, más recientes primero.
func (r *StockRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, quantity, created_at FROM stock
		WHERE product_id = $1 ORDER BY created_at DESC, id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumByProduct stock actual del producto.
func (r *StockRepo) SumByProduct(ctx context.Context, productID int64) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}
