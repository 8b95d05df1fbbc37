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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, phone, address, postcode, city, contact, siren, siret, is_active, store_id,
	created_at, updated_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.Postcode, &s.City, &s.Contact,
		&s.Siren, &s.Siret, &s.IsActive, &s.StoreID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO supplier (name, phone, address, postcode, city, contact, siren, siret, is_active, store_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		s.Name, s.Phone, s.Address, s.Postcode, s.City, s.Contact, s.Siren, s.Siret, s.IsActive, s.StoreID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Supplier, error) {
	clause, args := scopeClause(scope, "store_id", []any{id})
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM supplier WHERE id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Supplier, error) {
	clause, args := scopeClause(scope, "store_id", nil)
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM supplier WHERE TRUE`+clause+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) ExistsByName(ctx context.Context, storeID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM supplier WHERE store_id = $1 AND name = $2 AND id <> $3)`,
		storeID, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists supplier: %w", err)
	}
	return exists, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		UPDATE supplier SET name = $2, phone = $3, address = $4, postcode = $5, city = $6, contact = $7,
			siren = $8, siret = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		s.ID, s.Name, s.Phone, s.Address, s.Postcode, s.City, s.Contact, s.Siren, s.Siret,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("supplier", s.ID)
		}
		return mapWriteError("update supplier", err)
	}
	return nil
}

func (r *SupplierRepo) Deactivate(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE supplier SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("supplier", id)
	}
	return nil
}
