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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// El scope se resuelve con LEFT JOIN al pasillo: una categoría sin pasillo solo es visible con scope global.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categorySelect = `SELECT c.id, c.name, c.aisle_id, c.created_at, c.updated_at
	FROM category c LEFT JOIN aisle a ON a.id = c.aisle_id`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.AisleID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO category (name, aisle_id) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`, c.Name, c.AisleID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapWriteError("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Category, error) {
	clause, args := scopeClause(scope, "a.store_id", []any{id})
	c, err := scanCategory(r.q.QueryRow(ctx, categorySelect+` WHERE c.id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Category, error) {
	clause, args := scopeClause(scope, "a.store_id", nil)
	rows, err := r.q.Query(ctx, categorySelect+` WHERE TRUE`+clause+` ORDER BY c.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM category WHERE name = $1 AND id <> $2)`, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists category: %w", err)
	}
	return exists, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		UPDATE category SET name = $2, aisle_id = $3, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		c.ID, c.Name, c.AisleID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("category", c.ID)
		}
		return mapWriteError("update category", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete category", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("category", id)
	}
	return nil
}
