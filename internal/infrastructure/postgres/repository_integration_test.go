//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
)

// setupPool levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve el pool.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("magasin_test"),
		tcpostgres.WithUsername("magasin"),
		tcpostgres.WithPassword("magasin"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("no se pudo iniciar el contenedor PostgreSQL: %v", err)
	}
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = container.Terminate(cleanupCtx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "las migraciones son idempotentes")
	return pool
}

type fixture struct {
	repos  repository.TxRepos
	storeA *entity.Store
	storeB *entity.Store
}

func newFixture(t *testing.T, pool *pgxpool.Pool) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{repos: NewRepos(pool)}
	f.storeA = &entity.Store{Name: "A", Siren: "111111111", Siret: "11111111100011", IsActive: true}
	f.storeB = &entity.Store{Name: "B", Siren: "222222222", Siret: "22222222200022", IsActive: true}
	require.NoError(t, f.repos.Stores.Create(ctx, f.storeA))
	require.NoError(t, f.repos.Stores.Create(ctx, f.storeB))
	return f
}

func TestIntegration_ValidRoleStoreCheck(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	role := &entity.Role{Name: entity.RoleStoreManager, Permissions: entity.NewPermissionSet(entity.PermReadProduct), StoreID: &f.storeA.ID}
	require.NoError(t, f.repos.Roles.Create(ctx, role))

	ok := &entity.User{Email: "a@a.fr", PasswordHash: "x", RoleID: role.ID, StoreID: &f.storeA.ID, IsActive: true}
	require.NoError(t, f.repos.Users.Create(ctx, ok))

	bad := &entity.User{Email: "b@b.fr", PasswordHash: "x", RoleID: role.ID, StoreID: &f.storeB.ID, IsActive: true}
	err := f.repos.Users.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	// un rol sin tienda sirve para cualquier usuario
	global := &entity.Role{Name: entity.RoleSuperAdmin, Permissions: entity.SuperAdminPermissions()}
	require.NoError(t, f.repos.Roles.Create(ctx, global))
	admin := &entity.User{Email: "root@root.fr", PasswordHash: "x", RoleID: global.ID, IsActive: true}
	require.NoError(t, f.repos.Users.Create(ctx, admin))

	// el rol referenciado no se puede borrar
	assert.ErrorIs(t, f.repos.Roles.Delete(ctx, role.ID), domain.ErrConflict)
}

func TestIntegration_SameAisleCheck(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	a1 := &entity.Aisle{Name: "Frais", StoreID: f.storeA.ID}
	a2 := &entity.Aisle{Name: "Épicerie", StoreID: f.storeA.ID}
	require.NoError(t, f.repos.Aisles.Create(ctx, a1))
	require.NoError(t, f.repos.Aisles.Create(ctx, a2))

	c1 := &entity.Category{Name: "Yaourts", AisleID: &a1.ID}
	c2 := &entity.Category{Name: "Fromages", AisleID: &a1.ID}
	c3 := &entity.Category{Name: "Pâtes", AisleID: &a2.ID}
	for _, c := range []*entity.Category{c1, c2, c3} {
		require.NoError(t, f.repos.Categories.Create(ctx, c))
	}

	p := &entity.Product{Name: "Skyr", Code: "3000000000001", Price: decimal.RequireFromString("2.50"),
		NutriScore: entity.ScoreA, EcoScore: entity.ScoreB, StoreID: f.storeA.ID, IsActive: true}
	require.NoError(t, f.repos.Products.Create(ctx, p))

	require.NoError(t, f.repos.Products.AttachCategory(ctx, p.ID, c1.ID))
	require.NoError(t, f.repos.Products.AttachCategory(ctx, p.ID, c2.ID))
	err := f.repos.Products.AttachCategory(ctx, p.ID, c3.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	ref, ok, err := f.repos.Products.ReferenceCategory(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c2.ID, ref.ID)
}

func TestIntegration_StoreScopeAndStockLedger(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	p := &entity.Product{Name: "Lait", Code: "3000000000002", Price: decimal.NewFromInt(1),
		NutriScore: entity.ScoreB, EcoScore: entity.ScoreNotApplicable, Threshold: 10, StoreID: f.storeA.ID, IsActive: true}
	require.NoError(t, f.repos.Products.Create(ctx, p))
	require.NoError(t, f.repos.Stocks.Create(ctx, &entity.Stock{ProductID: p.ID, Quantity: 12}))
	require.NoError(t, f.repos.Stocks.Create(ctx, &entity.Stock{ProductID: p.ID, Quantity: -5}))

	got, err := f.repos.Products.GetByID(ctx, access.ForStore(f.storeA.ID), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.InStock)
	assert.True(t, got.BelowThreshold())

	other, err := f.repos.Products.GetByID(ctx, access.ForStore(f.storeB.ID), p.ID)
	require.NoError(t, err)
	assert.Nil(t, other, "fuera del scope es indistinguible de inexistente")

	listB, err := f.repos.Products.List(ctx, access.ForStore(f.storeB.ID))
	require.NoError(t, err)
	assert.Empty(t, listB)

	dup := &entity.Product{Name: "Lait bis", Code: "3000000000002", StoreID: f.storeA.ID, IsActive: true,
		NutriScore: entity.ScoreNotApplicable, EcoScore: entity.ScoreNotApplicable}
	assert.ErrorIs(t, f.repos.Products.Create(ctx, dup), domain.ErrConflict)
}

func TestIntegration_RefreshTokenCompareAndSwap(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	role := &entity.Role{Name: "caisse", Permissions: entity.NewPermissionSet(), StoreID: &f.storeA.ID}
	require.NoError(t, f.repos.Roles.Create(ctx, role))
	u := &entity.User{Email: "c@c.fr", PasswordHash: "x", RoleID: role.ID, StoreID: &f.storeA.ID, IsActive: true}
	require.NoError(t, f.repos.Users.Create(ctx, u))
	require.NoError(t, f.repos.Users.SaveRefreshToken(ctx, u.ID, "h0"))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, next := range []string{"h1", "h2"} {
		wg.Add(1)
		go func(next string) {
			defer wg.Done()
			ok, err := f.repos.Users.RotateRefreshToken(ctx, u.ID, "h0", next)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(next)
	}
	wg.Wait()
	assert.Equal(t, 1, wins, "solo una rotación concurrente gana")

	found, err := f.repos.Users.FindActiveByRefreshToken(ctx, u.ID, "h0")
	require.NoError(t, err)
	assert.Nil(t, found, "el token rotado ya no es válido")

	require.NoError(t, f.repos.Users.ClearRefreshToken(ctx, u.ID))
	found, err = f.repos.Users.FindActiveByRefreshToken(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestIntegration_StoreDeleteCascades(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	role := &entity.Role{Name: entity.RoleStoreManager, Permissions: entity.NewPermissionSet(), StoreID: &f.storeB.ID}
	require.NoError(t, f.repos.Roles.Create(ctx, role))
	u := &entity.User{Email: "d@d.fr", PasswordHash: "x", RoleID: role.ID, StoreID: &f.storeB.ID, IsActive: true}
	require.NoError(t, f.repos.Users.Create(ctx, u))

	require.NoError(t, f.repos.Stores.Delete(ctx, f.storeB.ID))
	gone, err := f.repos.Users.GetByID(ctx, access.Unrestricted(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIntegration_TraversalScope(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()
	scopeA := access.ForStore(f.storeA.ID)

	// categoría: la tienda se resuelve a través del pasillo
	aisleB := &entity.Aisle{Name: "Frais", StoreID: f.storeB.ID}
	require.NoError(t, f.repos.Aisles.Create(ctx, aisleB))
	catB := &entity.Category{Name: "Yaourts", AisleID: &aisleB.ID}
	orphan := &entity.Category{Name: "Sans rayon"}
	require.NoError(t, f.repos.Categories.Create(ctx, catB))
	require.NoError(t, f.repos.Categories.Create(ctx, orphan))

	gotCat, err := f.repos.Categories.GetByID(ctx, scopeA, catB.ID)
	require.NoError(t, err)
	assert.Nil(t, gotCat)
	gotCat, err = f.repos.Categories.GetByID(ctx, access.ForStore(f.storeB.ID), catB.ID)
	require.NoError(t, err)
	require.NotNil(t, gotCat)
	gotCat, err = f.repos.Categories.GetByID(ctx, scopeA, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, gotCat, "una categoría sin pasillo solo se ve con scope global")

	cats, err := f.repos.Categories.List(ctx, scopeA)
	require.NoError(t, err)
	assert.Empty(t, cats)
	cats, err = f.repos.Categories.List(ctx, access.Unrestricted())
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	// rol: uno sin tienda no es visible para una tienda
	global := &entity.Role{Name: entity.RoleSuperAdmin, Permissions: entity.SuperAdminPermissions()}
	roleA := &entity.Role{Name: entity.RoleStoreManager, Permissions: entity.NewPermissionSet(entity.PermReadProduct), StoreID: &f.storeA.ID}
	roleB := &entity.Role{Name: entity.RoleStoreManager, Permissions: entity.NewPermissionSet(entity.PermReadProduct), StoreID: &f.storeB.ID}
	for _, r := range []*entity.Role{global, roleA, roleB} {
		require.NoError(t, f.repos.Roles.Create(ctx, r))
	}
	gotRole, err := f.repos.Roles.GetByID(ctx, scopeA, global.ID)
	require.NoError(t, err)
	assert.Nil(t, gotRole)
	gotRole, err = f.repos.Roles.GetByID(ctx, access.Unrestricted(), global.ID)
	require.NoError(t, err)
	assert.NotNil(t, gotRole)
	roles, err := f.repos.Roles.List(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, roleA.ID, roles[0].ID)

	// usuario y proveedor de B
	userB := &entity.User{Email: "b@b.fr", PasswordHash: "x", RoleID: roleB.ID, StoreID: &f.storeB.ID, IsActive: true}
	require.NoError(t, f.repos.Users.Create(ctx, userB))
	gotUser, err := f.repos.Users.GetByID(ctx, scopeA, userB.ID)
	require.NoError(t, err)
	assert.Nil(t, gotUser)
	users, err := f.repos.Users.List(ctx, scopeA)
	require.NoError(t, err)
	assert.Empty(t, users)

	supB := &entity.Supplier{Name: "Lactalis", StoreID: f.storeB.ID, IsActive: true}
	require.NoError(t, f.repos.Suppliers.Create(ctx, supB))
	gotSup, err := f.repos.Suppliers.GetByID(ctx, scopeA, supB.ID)
	require.NoError(t, err)
	assert.Nil(t, gotSup)
	sups, err := f.repos.Suppliers.List(ctx, scopeA)
	require.NoError(t, err)
	assert.Empty(t, sups)
}

func TestIntegration_SuperAdminNameIsGlobalOnly(t *testing.T) {
	pool := setupPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	homonym := &entity.Role{Name: entity.RoleSuperAdmin, Permissions: entity.NewPermissionSet(entity.PermManageProduct), StoreID: &f.storeA.ID}
	assert.ErrorIs(t, f.repos.Roles.Create(ctx, homonym), domain.ErrConstraintViolation)

	cashier := &entity.Role{Name: "caissier", Permissions: entity.NewPermissionSet(entity.PermReadProduct), StoreID: &f.storeA.ID}
	require.NoError(t, f.repos.Roles.Create(ctx, cashier))
	cashier.Name = "Super Admin"
	assert.ErrorIs(t, f.repos.Roles.Update(ctx, cashier), domain.ErrConstraintViolation)
}
