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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id, name, address, postcode, city, siren, siret, is_active, created_at, updated_at`

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Postcode, &s.City, &s.Siren, &s.Siret,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste la tienda y rellena ID y timestamps.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO store (name, address, postcode, city, siren, siret, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		s.Name, s.Address, s.Postcode, s.City, s.Siren, s.Siret, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert store", err)
	}
	return nil
}

// GetByID obtiene una tienda visible en el scope. (nil, nil) si no existe o está fuera del scope.
func (r *StoreRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Store, error) {
	clause, args := scopeClause(scope, "id", []any{id})
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM store WHERE id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// List lista las tiendas visibles en el scope.
func (r *StoreRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Store, error) {
	clause, args := scopeClause(scope, "id", nil)
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM store WHERE TRUE`+clause+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la tienda.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	err := r.q.QueryRow(ctx, `
		UPDATE store SET name = $2, address = $3, postcode = $4, city = $5, siren = $6, siret = $7,
			is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		s.ID, s.Name, s.Address, s.Postcode, s.City, s.Siren, s.Siret, s.IsActive,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("store", s.ID)
		}
		return mapWriteError("update store", err)
	}
	return nil
}

// Delete borra la tienda; roles, usuarios, pasillos, productos y proveedores caen en cascada.
func (r *StoreRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM store WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete store", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("store", id)
	}
	return nil
}
