package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

type stubNutrition struct {
	info  *ports.NutritionInfo
	err   error
	calls int
}

func (s *stubNutrition) LookupProduct(context.Context, string) (*ports.NutritionInfo, error) {
	s.calls++
	return s.info, s.err
}

type productFixture struct {
	db       *memDB
	uc       *ProductUseCase
	stock    *StockUseCase
	storeA   *entity.Store
	storeB   *entity.Store
	managerA access.Caller
	deptA    access.Caller
	managerB access.Caller
}

func newProductFixture(t *testing.T, nutrition ports.NutritionLookup) *productFixture {
	t.Helper()
	db := newMemDB()
	a, b := db.addStore("A"), db.addStore("B")
	smA := db.addRole(entity.RoleStoreManager, starter(entity.RoleStoreManager), ptr(a.ID))
	dmA := db.addRole(entity.RoleDepartmentManager, starter(entity.RoleDepartmentManager), ptr(a.ID))
	smB := db.addRole(entity.RoleStoreManager, starter(entity.RoleStoreManager), ptr(b.ID))
	repos := db.repos()
	return &productFixture{
		db:       db,
		uc:       NewProductUseCase(repos, fakeTx{db: db}, nutrition, nil),
		stock:    NewStockUseCase(repos, fakeTx{db: db}),
		storeA:   a,
		storeB:   b,
		managerA: callerFor(smA, 100, ptr(a.ID)),
		deptA:    callerFor(dmA, 101, ptr(a.ID)),
		managerB: callerFor(smB, 102, ptr(b.ID)),
	}
}

func TestProduct_CreateAsignaTiendaDelCaller(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()

	out, err := f.uc.Create(ctx, f.managerA, dto.CreateProductRequest{
		Name: "Leche", Code: "3017620422003", Price: decimal.NewFromFloat(1.2),
		StoreID: ptr(f.storeB.ID), InStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, f.storeA.ID, out.Store.ID, "la tienda pedida se ignora")
	assert.Equal(t, int64(5), out.InStock)
	assert.Len(t, f.db.stocks, 1, "el stock inicial es un asiento")

	_, err = f.uc.Create(ctx, superAdminCaller(), dto.CreateProductRequest{Name: "X", Code: "1"})
	assert.ErrorIs(t, err, domain.ErrMissingStore)

	out, err = f.uc.Create(ctx, superAdminCaller(), dto.CreateProductRequest{
		Name: "Leche", Code: "3017620422003", StoreID: ptr(f.storeB.ID),
	})
	require.NoError(t, err, "el mismo código en otra tienda está permitido")
	assert.Equal(t, f.storeB.ID, out.Store.ID)
	assert.Equal(t, int64(0), out.InStock)
}

func TestProduct_CreateCodigoDuplicado(t *testing.T) {
	f := newProductFixture(t, nil)
	f.db.addProduct("123", f.storeA.ID)

	_, err := f.uc.Create(context.Background(), f.managerA, dto.CreateProductRequest{Name: "Otro", Code: "123"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProduct_CreateMarcaInexistente(t *testing.T) {
	f := newProductFixture(t, nil)
	_, err := f.uc.Create(context.Background(), f.managerA, dto.CreateProductRequest{Name: "X", Code: "1", BrandID: 77})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.db.products)
}

func TestProduct_CreateEnriquecimiento(t *testing.T) {
	nut := &stubNutrition{info: &ports.NutritionInfo{NutriScore: "b", EcoScore: "c", Ingredients: "leche"}}
	f := newProductFixture(t, nut)

	out, err := f.uc.Create(context.Background(), f.managerA, dto.CreateProductRequest{Name: "Leche", Code: "1", EcoScore: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, nut.calls)
	assert.Equal(t, "B", out.NutriScore)
	assert.Equal(t, "A", out.EcoScore, "el valor enviado gana sobre el externo")
	assert.Equal(t, "leche", out.Ingredients)
}

func TestProduct_CreateEnriquecimientoCaidoNoBloquea(t *testing.T) {
	nut := &stubNutrition{err: errors.New("timeout")}
	f := newProductFixture(t, nut)

	out, err := f.uc.Create(context.Background(), f.managerA, dto.CreateProductRequest{Name: "Leche", Code: "1"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ScoreNotApplicable), out.NutriScore)
	assert.Empty(t, out.Ingredients)
}

func TestProduct_DepartmentManagerSoloInStock(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	p := f.db.addProduct("123", f.storeA.ID)
	p.Price = decimal.NewFromInt(3)
	f.db.stocks = append(f.db.stocks, &entity.Stock{ID: 500, ProductID: p.ID, Quantity: 5})

	price := decimal.NewFromInt(1)
	_, err := f.uc.Update(ctx, f.deptA, p.ID, []string{"id", "price"}, dto.UpdateProductRequest{ID: ptr(p.ID), Price: &price})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFieldNotAllowed)
	assert.True(t, f.db.products[p.ID].Price.Equal(decimal.NewFromInt(3)), "no se escribe nada")
	assert.Len(t, f.db.stocks, 1)

	out, err := f.uc.Update(ctx, f.deptA, p.ID, []string{"id", "inStock"}, dto.UpdateProductRequest{ID: ptr(p.ID), InStock: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.InStock)
	require.Len(t, f.db.stocks, 2)
	assert.Equal(t, int64(7), f.db.stocks[1].Quantity, "se registra la diferencia")

	_, err = f.uc.Update(ctx, f.deptA, p.ID, []string{"inStock"}, dto.UpdateProductRequest{InStock: ptr(12)})
	require.NoError(t, err)
	assert.Len(t, f.db.stocks, 2, "sin diferencia no hay asiento")
}

func TestProduct_UpdateInStockSumaElLibro(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	p := f.db.addProduct("123", f.storeA.ID)
	f.db.stocks = append(f.db.stocks,
		&entity.Stock{ID: 500, ProductID: p.ID, Quantity: 10},
		&entity.Stock{ID: 501, ProductID: p.ID, Quantity: -4},
	)

	name := "Nuevo"
	_, err := f.uc.Update(ctx, f.managerA, p.ID, []string{"name"}, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Zero(t, f.db.ledgerSums, "sin inStock no se consulta el libro")

	out, err := f.uc.Update(ctx, f.managerA, p.ID, []string{"inStock"}, dto.UpdateProductRequest{InStock: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, f.db.ledgerSums)
	assert.Equal(t, int64(2), out.InStock)
	require.Len(t, f.db.stocks, 3)
	assert.Equal(t, int64(-4), f.db.stocks[2].Quantity, "diferencia contra la suma del libro")
}

func TestProduct_UpdateStoreManager(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	p := f.db.addProduct("123", f.storeA.ID)
	f.db.addProduct("456", f.storeA.ID)

	name := "Nuevo"
	out, err := f.uc.Update(ctx, f.managerA, p.ID, []string{"name"}, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", out.Name)

	code := "456"
	_, err = f.uc.Update(ctx, f.managerA, p.ID, []string{"code"}, dto.UpdateProductRequest{Code: &code})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Update(ctx, f.managerA, p.ID, []string{"id"}, dto.UpdateProductRequest{ID: ptr(p.ID + 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Update(ctx, f.managerB, p.ID, []string{"name"}, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound, "fuera de scope es no encontrado")
}

func TestProduct_ScopeLectura(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	pa := f.db.addProduct("1", f.storeA.ID)
	pb := f.db.addProduct("2", f.storeB.ID)

	list, err := f.uc.List(ctx, f.managerA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pa.ID, list[0].ID)

	_, err = f.uc.Get(ctx, f.managerA, pb.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.uc.List(ctx, superAdminCaller())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, f.uc.Delete(ctx, f.managerA, pb.ID), domain.ErrNotFound)
	require.NoError(t, f.uc.Delete(ctx, f.managerA, pa.ID))
	assert.False(t, f.db.products[pa.ID].IsActive)
}

func TestProduct_AttachCategoriesMismoPasillo(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	x := f.db.addAisle("X", f.storeA.ID)
	y := f.db.addAisle("Y", f.storeA.ID)
	c1 := f.db.addCategory("c1", ptr(x.ID))
	c2 := f.db.addCategory("c2", ptr(y.ID))
	c3 := f.db.addCategory("c3", ptr(x.ID))
	p := f.db.addProduct("1", f.storeA.ID)

	_, err := f.uc.AttachCategories(ctx, f.managerA, p.ID, dto.AttachCategoriesRequest{CategoryIDs: []int64{c1.ID}})
	require.NoError(t, err)

	_, err = f.uc.AttachCategories(ctx, f.managerA, p.ID, dto.AttachCategoriesRequest{CategoryIDs: []int64{c2.ID}})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	out, err := f.uc.AttachCategories(ctx, f.managerA, p.ID, dto.AttachCategoriesRequest{CategoryIDs: []int64{c3.ID, c1.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{c1.ID, c3.ID}, out.Categories)
}

func TestProduct_AttachCategoriaDeOtraTienda(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	other := f.db.addAisle("B1", f.storeB.ID)
	cat := f.db.addCategory("ajena", ptr(other.ID))
	p := f.db.addProduct("1", f.storeA.ID)

	_, err := f.uc.AttachCategories(ctx, f.managerA, p.ID, dto.AttachCategoriesRequest{CategoryIDs: []int64{cat.ID}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la categoría no es visible para la tienda A")

	_, err = f.uc.AttachCategories(ctx, superAdminCaller(), p.ID, dto.AttachCategoriesRequest{CategoryIDs: []int64{cat.ID}})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Empty(t, f.db.prodCats[p.ID])
}

func TestProduct_AttachSupplier(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	p := f.db.addProduct("1", f.storeA.ID)
	own := f.db.addSupplier("propio", f.storeA.ID)
	foreign := f.db.addSupplier("ajeno", f.storeB.ID)

	err := f.uc.AttachSupplier(ctx, f.managerA, p.ID, dto.AttachSupplierRequest{SupplierID: own.ID, PurchasePrice: decimal.NewFromInt(2)})
	require.NoError(t, err)
	require.Len(t, f.db.links, 1)

	err = f.uc.AttachSupplier(ctx, superAdminCaller(), p.ID, dto.AttachSupplierRequest{SupplierID: foreign.ID})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	err = f.uc.AttachSupplier(ctx, f.managerA, p.ID, dto.AttachSupplierRequest{SupplierID: own.ID, PurchasePrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStock_LibroDeAsientos(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	p := f.db.addProduct("1", f.storeA.ID)

	_, err := f.stock.AddEntry(ctx, f.managerA, p.ID, dto.CreateStockRequest{Quantity: 10})
	require.NoError(t, err)
	_, err = f.stock.AddEntry(ctx, f.managerA, p.ID, dto.CreateStockRequest{Quantity: -3})
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, f.managerA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.InStock)

	entries, err := f.stock.List(ctx, f.managerA, p.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = f.stock.AddEntry(ctx, f.managerB, p.ID, dto.CreateStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.stock.List(ctx, f.managerB, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.stock.AddEntry(ctx, f.managerA, p.ID, dto.CreateStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStock_CantidadFueraDeRango(t *testing.T) {
	f := newProductFixture(t, nil)
	ctx := context.Background()
	p := f.db.addProduct("1", f.storeA.ID)

	_, err := f.stock.AddEntry(ctx, f.managerA, p.ID, dto.CreateStockRequest{Quantity: entity.MaxStockQuantity + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Create(ctx, f.managerA, dto.CreateProductRequest{Name: "X", Code: "2", InStock: 1 << 31})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.db.stocks)

	// el objetivo cabe pero la diferencia con un libro muy negativo no
	f.db.stocks = append(f.db.stocks, &entity.Stock{ID: 500, ProductID: p.ID, Quantity: entity.MinStockQuantity})
	_, err = f.uc.Update(ctx, f.managerA, p.ID, []string{"inStock"}, dto.UpdateProductRequest{InStock: ptr(entity.MaxStockQuantity)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, f.db.stocks, 1)
}
