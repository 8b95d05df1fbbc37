package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
)

var _ repository.AisleRepository = (*AisleRepo)(nil)

// AisleRepo implementación del puerto AisleRepository sobre PostgreSQL.
type AisleRepo struct {
	q Querier
}

// NewAisleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAisleRepository(q Querier) *AisleRepo {
	return &AisleRepo{q: q}
}

const aisleColumns = `id, name, store_id, created_at, updated_at`

func scanAisle(row pgx.Row) (*entity.Aisle, error) {
	var a entity.Aisle
	if err := row.Scan(&a.ID, &a.Name, &a.StoreID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AisleRepo) Create(ctx context.Context, a *entity.Aisle) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO aisle (name, store_id) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`, a.Name, a.StoreID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapWriteError("insert aisle", err)
	}
	return nil
}

func (r *AisleRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Aisle, error) {
	clause, args := scopeClause(scope, "store_id", []any{id})
	a, err := scanAisle(r.q.QueryRow(ctx, `SELECT `+aisleColumns+` FROM aisle WHERE id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get aisle: %w", err)
	}
	return a, nil
}

func (r *AisleRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Aisle, error) {
	clause, args := scopeClause(scope, "store_id", nil)
	rows, err := r.q.Query(ctx, `SELECT `+aisleColumns+` FROM aisle WHERE TRUE`+clause+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list aisles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Aisle
	for rows.Next() {
		a, err := scanAisle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan aisle: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ExistsByName nombre único dentro de la tienda.
func (r *AisleRepo) ExistsByName(ctx context.Context, storeID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM aisle WHERE store_id = $1 AND name = $2 AND id <> $3)`,
		storeID, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists aisle: %w", err)
	}
	return exists, nil
}

func (r *AisleRepo) Update(ctx context.Context, a *entity.Aisle) error {
	err := r.q.QueryRow(ctx, `
		UPDATE aisle SET name = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		a.ID, a.Name,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("aisle", a.ID)
		}
		return mapWriteError("update aisle", err)
	}
	return nil
}

func (r *AisleRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM aisle WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete aisle", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("aisle", id)
	}
	return nil
}
