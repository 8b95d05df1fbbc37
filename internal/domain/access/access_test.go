package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

func ptr(v int64) *int64 { return &v }

func storeManager(store int64) access.Caller {
	starter := entity.StarterRoles()[0]
	return access.Caller{UserID: 1, RoleName: starter.Name, Permissions: starter.Permissions, StoreID: ptr(store)}
}

func departmentManager(store int64) access.Caller {
	starter := entity.StarterRoles()[2]
	return access.Caller{UserID: 2, RoleName: starter.Name, Permissions: starter.Permissions, StoreID: ptr(store)}
}

func superAdmin() access.Caller {
	return access.Caller{UserID: 3, RoleName: entity.RoleSuperAdmin, Permissions: entity.SuperAdminPermissions()}
}

func TestAuthorize_SemanticaOR(t *testing.T) {
	granted := entity.NewPermissionSet(entity.PermReadProduct)

	assert.True(t, access.Authorize(granted, []entity.Permission{entity.PermManageAll, entity.PermReadProduct}),
		"basta con un permiso en común")
	assert.False(t, access.Authorize(granted, []entity.Permission{entity.PermManageProduct}))
	assert.True(t, access.Authorize(granted, nil), "sin requisitos se permite")
	assert.False(t, access.Authorize(entity.NewPermissionSet(), access.ReadRequirement(entity.ResourceStock)))
}

func TestRequirements(t *testing.T) {
	assert.ElementsMatch(t,
		[]entity.Permission{entity.PermReadAll, entity.PermManageAll, entity.PermReadAisle, entity.PermManageAisle},
		access.ReadRequirement(entity.ResourceAisle))
	assert.ElementsMatch(t,
		[]entity.Permission{entity.PermManageAll, entity.PermManageUser},
		access.ManageRequirement(entity.ResourceUser))

	assert.True(t, superAdmin().Can(access.ManageRequirement(entity.ResourceStore)...))
	assert.False(t, departmentManager(1).Can(access.ManageRequirement(entity.ResourceStock)...))
	assert.True(t, departmentManager(1).Can(access.ManageRequirement(entity.ResourceProduct)...))
}

func TestIsSuperAdmin_ExigeManageAll(t *testing.T) {
	assert.True(t, superAdmin().IsSuperAdmin())

	impostor := storeManager(4)
	impostor.RoleName = entity.RoleSuperAdmin
	assert.False(t, impostor.IsSuperAdmin(), "el nombre solo no basta")

	got, err := access.AssignStore(impostor, ptr(9))
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestScope(t *testing.T) {
	sm := storeManager(7)
	assert.Equal(t, access.Scope{StoreID: 7}, sm.ReadScope())
	assert.Equal(t, access.Scope{StoreID: 7}, sm.ManageScope())
	assert.True(t, sm.ReadScope().Allows(7))
	assert.False(t, sm.ReadScope().Allows(8))
	assert.False(t, sm.ReadScope().AllowsOptional(nil), "un rol global no es visible para una tienda")

	sa := superAdmin()
	assert.True(t, sa.ReadScope().Global)
	assert.True(t, sa.ManageScope().Global)

	reader := access.Caller{Permissions: entity.NewPermissionSet(entity.PermReadAll), StoreID: ptr(2)}
	assert.True(t, reader.ReadScope().Global)
	assert.Equal(t, access.Scope{StoreID: 2}, reader.ManageScope(), "READ_ALL no da escritura global")

	orphan := access.Caller{Permissions: entity.NewPermissionSet(entity.PermReadProduct)}
	assert.False(t, orphan.ReadScope().Allows(0), "sin tienda no se ve ninguna fila")
}

func TestCheckFields_DepartmentManager(t *testing.T) {
	dm := departmentManager(1)

	err := access.CheckFields(dm, access.OpProductUpdate, []string{"id", "price"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFieldNotAllowed)

	assert.NoError(t, access.CheckFields(dm, access.OpProductUpdate, []string{"id", "inStock"}))
	assert.NoError(t, access.CheckFields(storeManager(1), access.OpProductUpdate, []string{"price", "name"}),
		"el resto de roles no tiene restricción de campos")
	assert.NoError(t, access.CheckFields(dm, "supplier.update", []string{"name"}))
}

func TestAssignStore(t *testing.T) {
	got, err := access.AssignStore(storeManager(5), ptr(9))
	require.NoError(t, err)
	assert.Equal(t, int64(5), got, "la tienda pedida se ignora si no es super admin")

	_, err = access.AssignStore(superAdmin(), nil)
	assert.ErrorIs(t, err, domain.ErrMissingStore)

	got, err = access.AssignStore(superAdmin(), ptr(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	selected := superAdmin()
	selected.StoreID = ptr(4)
	got, err = access.AssignStore(selected, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got, "la tienda seleccionada sirve de valor por defecto")
}
