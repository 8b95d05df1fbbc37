package repository

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.User, error)
	List(ctx context.Context, scope access.Scope) ([]*entity.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	// Update no modifica password ni refresh token.
	Update(ctx context.Context, user *entity.User) error
	SetAisles(ctx context.Context, userID int64, aisleIDs []int64) error
	// Deactivate borrado lógico; también cierra la sesión.
	Deactivate(ctx context.Context, id int64) error

	// Sesión (protocolo de refresh token). tokenHash es sha256 hex del token.
	FindActiveByEmail(ctx context.Context, email string) (*entity.UserWithRole, error)
	FindActiveWithRole(ctx context.Context, id int64) (*entity.UserWithRole, error)
	FindActiveByRefreshToken(ctx context.Context, id int64, tokenHash string) (*entity.UserWithRole, error)
	SaveRefreshToken(ctx context.Context, id int64, tokenHash string) error
	// RotateRefreshToken reemplaza oldHash por newHash solo si oldHash sigue vigente (compare-and-swap).
	RotateRefreshToken(ctx context.Context, id int64, oldHash, newHash string) (bool, error)
	ClearRefreshToken(ctx context.Context, id int64) error
}
