package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/tenancy"
)

// UserUseCase gestión de usuarios del back-office.
type UserUseCase struct {
	repos      repository.TxRepos
	tx         repository.TxRunner
	bcryptCost int
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repos repository.TxRepos, tx repository.TxRunner) *UserUseCase {
	return &UserUseCase{repos: repos, tx: tx, bcryptCost: bcrypt.DefaultCost}
}

// resolveUserStore decide la tienda del usuario. Un rol sin tienda asignado por el super admin
// sin tienda pedida deja al usuario sin tienda (usuario global); el resto pasa por AssignStore.
func resolveUserStore(ctx context.Context, r repository.TxRepos, c access.Caller, role *entity.Role, requested *int64) (*int64, error) {
	if role.StoreID == nil && c.IsSuperAdmin() && requested == nil {
		return nil, nil
	}
	storeID, err := assignStore(ctx, r.Stores, c, requested)
	if err != nil {
		return nil, err
	}
	return &storeID, nil
}

// checkUserConsistency aplica ValidRoleStore y exige que los pasillos pertenezcan a la tienda del usuario.
func checkUserConsistency(ctx context.Context, r repository.TxRepos, role *entity.Role, storeID *int64, aisleIDs []int64) error {
	if !tenancy.ValidRoleStore(role.StoreID, storeID) {
		return fmt.Errorf("%w: el rol pertenece a otra tienda", domain.ErrConstraintViolation)
	}
	for _, aid := range aisleIDs {
		if storeID == nil {
			return fmt.Errorf("%w: un usuario sin tienda no tiene pasillos", domain.ErrConstraintViolation)
		}
		aisle, err := r.Aisles.GetByID(ctx, access.ForStore(*storeID), aid)
		if err != nil {
			return err
		}
		if aisle == nil {
			return fmt.Errorf("%w: pasillo %d fuera de la tienda del usuario", domain.ErrConstraintViolation, aid)
		}
	}
	return nil
}

// Create crea un usuario activo con password hasheada (bcrypt).
func (uc *UserUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		RoleID:       in.RoleID,
		AisleIDs:     in.AisleIDs,
		IsActive:     true,
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		role, err := r.Roles.GetByID(ctx, c.ManageScope(), in.RoleID)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: rol %d", domain.ErrNotFound, in.RoleID)
		}
		if user.StoreID, err = resolveUserStore(ctx, r, c, role, in.StoreID); err != nil {
			return err
		}
		if err := checkUserConsistency(ctx, r, role, user.StoreID, user.AisleIDs); err != nil {
			return err
		}
		exists, err := r.Users.ExistsByEmail(ctx, user.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrConflict
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		return r.Users.SetAisles(ctx, user.ID, user.AisleIDs)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List usuarios visibles en el scope de lectura.
func (uc *UserUseCase) List(ctx context.Context, c access.Caller) ([]*dto.UserResponse, error) {
	list, err := uc.repos.Users.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toUserResponse), nil
}

// Get usuario visible en el scope de lectura.
func (uc *UserUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.UserResponse, error) {
	u, err := uc.repos.Users.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(u), nil
}

// Update modifica el usuario y vuelve a comprobar la coherencia rol/tienda/pasillos.
func (uc *UserUseCase) Update(ctx context.Context, c access.Caller, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		user, err = r.Users.GetByID(ctx, c.ManageScope(), id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if in.Email != nil {
			user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
			exists, err := r.Users.ExistsByEmail(ctx, user.Email, user.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrConflict
			}
		}
		setIfNotNil(&user.FirstName, in.FirstName)
		setIfNotNil(&user.LastName, in.LastName)
		user.PasswordHash = ""
		if in.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.bcryptCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}

		roleID := user.RoleID
		setIfNotNil(&roleID, in.RoleID)
		role, err := r.Roles.GetByID(ctx, c.ManageScope(), roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: rol %d", domain.ErrNotFound, roleID)
		}
		user.RoleID = role.ID
		if in.StoreID != nil || in.RoleID != nil {
			requested := in.StoreID
			if requested == nil {
				requested = user.StoreID
			}
			if user.StoreID, err = resolveUserStore(ctx, r, c, role, requested); err != nil {
				return err
			}
		}
		if in.AisleIDs != nil {
			user.AisleIDs = *in.AisleIDs
		}
		if err := checkUserConsistency(ctx, r, role, user.StoreID, user.AisleIDs); err != nil {
			return err
		}
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}
		if in.AisleIDs != nil || in.StoreID != nil {
			return r.Users.SetAisles(ctx, user.ID, user.AisleIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete borrado lógico: desactiva y cierra la sesión.
func (uc *UserUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	u, err := uc.repos.Users.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Users.Deactivate(ctx, id)
}
