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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

const roleColumns = `id, name, permissions, store_id, created_at, updated_at`

func scanRole(row pgx.Row) (*entity.Role, error) {
	var (
		role  entity.Role
		perms []string
	)
	if err := row.Scan(&role.ID, &role.Name, &perms, &role.StoreID, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	set, ok := entity.ParsePermissionSet(perms)
	if !ok {
		return nil, fmt.Errorf("role %d: permiso desconocido en %v", role.ID, perms)
	}
	role.Permissions = set
	return &role, nil
}

// Create persiste el rol con sus permisos como TEXT[].
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO role (name, permissions, store_id) VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		role.Name, role.Permissions.Strings(), role.StoreID,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return mapWriteError("insert role", err)
	}
	return nil
}

// GetByID obtiene un rol visible en el scope. Los roles sin tienda solo son visibles con scope global.
func (r *RoleRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Role, error) {
	clause, args := scopeClause(scope, "store_id", []any{id})
	role, err := scanRole(r.q.QueryRow(ctx, `SELECT `+roleColumns+` FROM role WHERE id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// List lista los roles visibles en el scope.
func (r *RoleRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Role, error) {
	clause, args := scopeClause(scope, "store_id", nil)
	rows, err := r.q.Query(ctx, `SELECT `+roleColumns+` FROM role WHERE TRUE`+clause+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// ExistsByName comprueba duplicados de (name, store_id); NULL cuenta como un valor más.
func (r *RoleRepo) ExistsByName(ctx context.Context, name string, storeID *int64, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM role WHERE name = $1 AND store_id IS NOT DISTINCT FROM $2 AND id <> $3
		)`, name, storeID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists role: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre, permisos y tienda.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	err := r.q.QueryRow(ctx, `
		UPDATE role SET name = $2, permissions = $3, store_id = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		role.ID, role.Name, role.Permissions.Strings(), role.StoreID,
	).Scan(&role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("role", role.ID)
		}
		return mapWriteError("update role", err)
	}
	return nil
}

// Delete borra el rol. Si algún usuario lo referencia la FK lo impide (Conflict).
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM role WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete role", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("role", id)
	}
	return nil
}

// CountIncoherentUsers cuenta usuarios del rol cuya tienda difiere de storeID. Con storeID nil siempre es 0.
func (r *RoleRepo) CountIncoherentUsers(ctx context.Context, roleID int64, storeID *int64) (int64, error) {
	if storeID == nil {
		return 0, nil
	}
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM app_user WHERE role_id = $1 AND store_id IS DISTINCT FROM $2`,
		roleID, *storeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count role users: %w", err)
	}
	return n, nil
}
