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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.email, u.password_hash, u.first_name, u.last_name, u.role_id, u.store_id,
	ARRAY(SELECT ua.aisle_id FROM user_aisle ua WHERE ua.user_id = u.id ORDER BY ua.aisle_id),
	u.refresh_token, u.is_active, u.created_at, u.updated_at`

const userWithRoleSelect = `SELECT ` + userColumns + `, r.id, r.name, r.permissions, r.store_id
	FROM app_user u JOIN role r ON r.id = u.role_id`

func userDest(u *entity.User) []any {
	return []any{&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.RoleID, &u.StoreID,
		&u.AisleIDs, &u.RefreshToken, &u.IsActive, &u.CreatedAt, &u.UpdatedAt}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(userDest(&u)...); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserWithRole(row pgx.Row) (*entity.UserWithRole, error) {
	var (
		uw    entity.UserWithRole
		perms []string
	)
	dest := append(userDest(&uw.User), &uw.Role.ID, &uw.Role.Name, &perms, &uw.Role.StoreID)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	set, ok := entity.ParsePermissionSet(perms)
	if !ok {
		return nil, fmt.Errorf("role %d: permiso desconocido en %v", uw.Role.ID, perms)
	}
	uw.Role.Permissions = set
	return &uw, nil
}

// Create persiste el usuario. Los pasillos se guardan con SetAisles.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO app_user (email, password_hash, first_name, last_name, role_id, store_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.RoleID, u.StoreID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario visible en el scope (activo o no).
func (r *UserRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.User, error) {
	clause, args := scopeClause(scope, "u.store_id", []any{id})
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user u WHERE u.id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List lista los usuarios visibles en el scope.
func (r *UserRepo) List(ctx context.Context, scope access.Scope) ([]*entity.User, error) {
	clause, args := scopeClause(scope, "u.store_id", nil)
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM app_user u WHERE TRUE`+clause+` ORDER BY u.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// ExistsByEmail unicidad global del email.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM app_user WHERE lower(email) = lower($1) AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

// Update actualiza datos de perfil, rol y tienda. Un password_hash vacío no se toca.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		UPDATE app_user SET email = $2, first_name = $3, last_name = $4, role_id = $5, store_id = $6,
			password_hash = COALESCE(NULLIF($7, ''), password_hash), updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		u.ID, u.Email, u.FirstName, u.LastName, u.RoleID, u.StoreID, u.PasswordHash,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("user", u.ID)
		}
		return mapWriteError("update user", err)
	}
	return nil
}

// SetAisles reemplaza los pasillos asignados al usuario.
func (r *UserRepo) SetAisles(ctx context.Context, userID int64, aisleIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_aisle WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user aisles: %w", err)
	}
	if len(aisleIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_aisle (user_id, aisle_id)
		SELECT $1, unnest($2::BIGINT[]) ON CONFLICT DO NOTHING`,
		userID, aisleIDs,
	)
	if err != nil {
		return mapWriteError("insert user aisles", err)
	}
	return nil
}

// Deactivate borrado lógico: is_active = false y sesión cerrada.
func (r *UserRepo) Deactivate(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE app_user SET is_active = FALSE, refresh_token = '', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("user", id)
	}
	return nil
}

// FindActiveByEmail usuario activo con su rol (login). (nil, nil) si no existe.
func (r *UserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.UserWithRole, error) {
	return r.findWithRole(ctx, "find user by email",
		userWithRoleSelect+` WHERE lower(u.email) = lower($1) AND u.is_active`, email)
}

// FindActiveWithRole usuario activo con su rol por id.
func (r *UserRepo) FindActiveWithRole(ctx context.Context, id int64) (*entity.UserWithRole, error) {
	return r.findWithRole(ctx, "find user with role",
		userWithRoleSelect+` WHERE u.id = $1 AND u.is_active`, id)
}

// FindActiveByRefreshToken usuario activo cuyo refresh token vigente es tokenHash. Un hash vacío nunca coincide.
func (r *UserRepo) FindActiveByRefreshToken(ctx context.Context, id int64, tokenHash string) (*entity.UserWithRole, error) {
	if tokenHash == "" {
		return nil, nil
	}
	return r.findWithRole(ctx, "find user by refresh token",
		userWithRoleSelect+` WHERE u.id = $1 AND u.refresh_token = $2 AND u.refresh_token <> '' AND u.is_active`,
		id, tokenHash)
}

func (r *UserRepo) findWithRole(ctx context.Context, op, query string, args ...any) (*entity.UserWithRole, error) {
	uw, err := scanUserWithRole(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return uw, nil
}

// SaveRefreshToken sobrescribe el token vigente (una sola sesión activa por usuario).
func (r *UserRepo) SaveRefreshToken(ctx context.Context, id int64, tokenHash string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE app_user SET refresh_token = $2 WHERE id = $1 AND is_active`, id, tokenHash)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("user", id)
	}
	return nil
}

// RotateRefreshToken compare-and-swap: solo una de dos rotaciones concurrentes con el mismo token gana.
func (r *UserRepo) RotateRefreshToken(ctx context.Context, id int64, oldHash, newHash string) (bool, error) {
	if oldHash == "" {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE app_user SET refresh_token = $3
		WHERE id = $1 AND refresh_token = $2 AND is_active`,
		id, oldHash, newHash,
	)
	if err != nil {
		return false, fmt.Errorf("rotate refresh token: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ClearRefreshToken cierra la sesión (logout).
func (r *UserRepo) ClearRefreshToken(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE app_user SET refresh_token = '' WHERE id = $1`, id); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}
