package usecase

import (
	"context"
	"fmt"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
)

// RoleUseCase gestión de roles por tienda.
type RoleUseCase struct {
	repos repository.TxRepos
	tx    repository.TxRunner
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repos repository.TxRepos, tx repository.TxRunner) *RoleUseCase {
	return &RoleUseCase{repos: repos, tx: tx}
}

// parsePermissions valida las etiquetas contra el catálogo. Solo MANAGE_ALL concede permisos globales.
func parsePermissions(c access.Caller, tags []string) (entity.PermissionSet, error) {
	set, ok := entity.ParsePermissionSet(tags)
	if !ok {
		return nil, fmt.Errorf("%w: permiso desconocido", domain.ErrInvalidInput)
	}
	if set.HasAny(entity.PermReadAll, entity.PermManageAll) && !c.Can(access.GlobalOnly()...) {
		return nil, domain.ErrForbidden
	}
	return set, nil
}

// checkReservedName impide que un rol de tienda se llame como el rol de plataforma.
func checkReservedName(role *entity.Role) error {
	if entity.IsReservedRoleName(role.Name) && role.StoreID != nil {
		return fmt.Errorf("%w: el nombre %q está reservado al rol global", domain.ErrConstraintViolation, entity.RoleSuperAdmin)
	}
	return nil
}

// Create crea un rol. La tienda se asigna con AssignStore; global=true (solo super admin) lo deja sin tienda.
func (uc *RoleUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	perms, err := parsePermissions(c, in.Permissions)
	if err != nil {
		return nil, err
	}
	role := &entity.Role{Name: in.Name, Permissions: perms}
	if !(in.Global && c.IsSuperAdmin()) {
		storeID, err := assignStore(ctx, uc.repos.Stores, c, in.StoreID)
		if err != nil {
			return nil, err
		}
		role.StoreID = &storeID
	}
	if err := checkReservedName(role); err != nil {
		return nil, err
	}
	exists, err := uc.repos.Roles.ExistsByName(ctx, role.Name, role.StoreID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	if err := uc.repos.Roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// List roles visibles en el scope de lectura.
func (uc *RoleUseCase) List(ctx context.Context, c access.Caller) ([]*dto.RoleResponse, error) {
	list, err := uc.repos.Roles.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toRoleResponse), nil
}

// Get rol visible en el scope de lectura.
func (uc *RoleUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.RoleResponse, error) {
	role, err := uc.repos.Roles.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return toRoleResponse(role), nil
}

// Update cambia nombre, permisos o tienda. Un cambio de tienda exige que todos los usuarios del rol
// sigan siendo coherentes (ValidRoleStore); se comprueba en la misma transacción que la escritura.
func (uc *RoleUseCase) Update(ctx context.Context, c access.Caller, id int64, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	var role *entity.Role
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		role, err = r.Roles.GetByID(ctx, c.ManageScope(), id)
		if err != nil {
			return err
		}
		if role == nil {
			return domain.ErrNotFound
		}
		setIfNotNil(&role.Name, in.Name)
		if in.Permissions != nil {
			perms, err := parsePermissions(c, *in.Permissions)
			if err != nil {
				return err
			}
			role.Permissions = perms
		}

		storeChanged := false
		if c.IsSuperAdmin() {
			switch {
			case in.Global != nil && *in.Global:
				storeChanged = role.StoreID != nil
				role.StoreID = nil
			case in.StoreID != nil:
				if err := storeExists(ctx, r.Stores, *in.StoreID); err != nil {
					return err
				}
				storeChanged = role.StoreID == nil || *role.StoreID != *in.StoreID
				sid := *in.StoreID
				role.StoreID = &sid
			}
		}
		if storeChanged {
			n, err := r.Roles.CountIncoherentUsers(ctx, role.ID, role.StoreID)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: %d usuarios del rol pertenecen a otra tienda", domain.ErrConstraintViolation, n)
			}
		}
		if err := checkReservedName(role); err != nil {
			return err
		}

		exists, err := r.Roles.ExistsByName(ctx, role.Name, role.StoreID, role.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrConflict
		}
		return r.Roles.Update(ctx, role)
	})
	if err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Delete borra el rol; si algún usuario lo referencia, ErrConflict.
func (uc *RoleUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	role, err := uc.repos.Roles.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Roles.Delete(ctx, id)
}
