package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/jwt"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

// AuthUseCase protocolo de sesión: login, refresh con rotación, logout y selección de tienda.
type AuthUseCase struct {
	users  repository.UserRepository
	stores repository.StoreRepository
	signer *jwt.Signer
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, stores repository.StoreRepository, signer *jwt.Signer, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{users: users, stores: stores, signer: signer, log: log.Component("auth")}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// dummyPasswordHash hash con el coste por defecto; se compara cuando el email no existe
// para que la respuesta tarde lo mismo que con un email válido.
func dummyPasswordHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// ValidateCredentials devuelve el usuario activo si email y password coinciden.
// No hay bloqueo por intentos fallidos.
func (uc *AuthUseCase) ValidateCredentials(ctx context.Context, email, password string) (*entity.UserWithRole, error) {
	user, err := uc.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(password))
		uc.log.Debug().Str("email", email).Msg("login fallido: usuario inexistente o inactivo")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.log.Debug().Int64("user_id", user.ID).Msg("login fallido: password incorrecta")
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login valida credenciales, persiste un refresh token nuevo (sobrescribe la sesión anterior) y emite ambos tokens.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.ValidateCredentials(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.signer.GenerateRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generar refresh token: %w", err)
	}
	if err := uc.users.SaveRefreshToken(ctx, user.ID, jwt.HashRefreshToken(refresh)); err != nil {
		return nil, err
	}
	accessToken, err := uc.issueAccess(user, user.StoreID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("login")
	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refresh}, nil
}

// Refresh canjea un refresh token vigente por un par nuevo. El token presentado queda invalidado.
// Si dos peticiones canjean el mismo token a la vez, solo una gana; la otra recibe ErrAccessDenied.
func (uc *AuthUseCase) Refresh(ctx context.Context, presented string) (*dto.TokenResponse, error) {
	if presented == "" {
		return nil, domain.ErrAccessDenied
	}
	userID, err := uc.signer.ParseRefresh(presented)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAccessDenied, err)
	}
	oldHash := jwt.HashRefreshToken(presented)
	user, err := uc.users.FindActiveByRefreshToken(ctx, userID, oldHash)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAccessDenied
	}

	refresh, err := uc.signer.GenerateRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generar refresh token: %w", err)
	}
	swapped, err := uc.users.RotateRefreshToken(ctx, user.ID, oldHash, jwt.HashRefreshToken(refresh))
	if err != nil {
		return nil, err
	}
	if !swapped {
		uc.log.Warn().Int64("user_id", user.ID).Msg("refresh concurrente: el token ya fue rotado")
		return nil, domain.ErrAccessDenied
	}
	accessToken, err := uc.issueAccess(user, user.StoreID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refresh}, nil
}

// Logout invalida el refresh token del usuario.
func (uc *AuthUseCase) Logout(ctx context.Context, caller access.Caller) error {
	return uc.users.ClearRefreshToken(ctx, caller.UserID)
}

// SelectStore re-emite el access token del super admin con la tienda elegida. El refresh token no cambia.
func (uc *AuthUseCase) SelectStore(ctx context.Context, caller access.Caller, storeID int64) (*dto.TokenResponse, error) {
	if !caller.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(ctx, access.Unrestricted(), storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.FindActiveWithRole(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAccessDenied
	}
	accessToken, err := uc.issueAccess(user, &store.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: accessToken}, nil
}

// Me devuelve el usuario autenticado; la tienda es la del token (la seleccionada en el caso del super admin).
func (uc *AuthUseCase) Me(ctx context.Context, caller access.Caller) (*dto.MeResponse, error) {
	user, err := uc.users.FindActiveWithRole(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	aisles := user.AisleIDs
	if aisles == nil {
		aisles = []int64{}
	}
	return &dto.MeResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role: dto.RoleClaimResponse{
			ID:          user.Role.ID,
			Name:        user.Role.Name,
			Permissions: user.Role.Permissions.Strings(),
		},
		Store:  dto.NewIDRef(caller.StoreID),
		Aisles: aisles,
	}, nil
}

func (uc *AuthUseCase) issueAccess(user *entity.UserWithRole, storeID *int64) (string, error) {
	token, err := uc.signer.GenerateAccess(jwt.AccessInput{
		UserID: user.ID,
		Email:  user.Email,
		Role: jwt.RoleClaim{
			ID:          user.Role.ID,
			Name:        user.Role.Name,
			Permissions: user.Role.Permissions.Strings(),
		},
		StoreID: storeID,
		Aisles:  user.AisleIDs,
	})
	if err != nil {
		return "", fmt.Errorf("generar access token: %w", err)
	}
	return token, nil
}

// ErrUnknownPermission el token trae un permiso fuera del catálogo.
var ErrUnknownPermission = errors.New("permiso desconocido en el token")

// CallerFromClaims reconstruye el Caller a partir de un access token ya verificado.
func CallerFromClaims(claims *jwt.AccessClaims) (access.Caller, error) {
	perms, ok := entity.ParsePermissionSet(claims.Role.Permissions)
	if !ok {
		return access.Caller{}, ErrUnknownPermission
	}
	c := access.Caller{
		UserID:      claims.UserID,
		Email:       claims.Email,
		RoleID:      claims.Role.ID,
		RoleName:    claims.Role.Name,
		Permissions: perms,
		AisleIDs:    claims.Aisles,
	}
	if claims.Store != nil {
		id := claims.Store.ID
		c.StoreID = &id
	}
	return c, nil
}
