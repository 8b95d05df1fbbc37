package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/tenancy"
)

// memDB base en memoria compartida por los repositorios falsos. Las transacciones no hacen rollback:
// los tests comprueban que el error se devuelve antes de escribir.
type memDB struct {
	mu         sync.Mutex
	seq        int64
	stores     map[int64]*entity.Store
	roles      map[int64]*entity.Role
	users      map[int64]*entity.User
	aisles     map[int64]*entity.Aisle
	categories map[int64]*entity.Category
	brands     map[int64]*entity.Brand
	products   map[int64]*entity.Product
	prodCats   map[int64][]int64
	stocks     []*entity.Stock
	suppliers  map[int64]*entity.Supplier
	links      []*entity.ProductSupplier
	ledgerSums int // llamadas a SumByProduct
}

func newMemDB() *memDB {
	return &memDB{
		stores:     map[int64]*entity.Store{},
		roles:      map[int64]*entity.Role{},
		users:      map[int64]*entity.User{},
		aisles:     map[int64]*entity.Aisle{},
		categories: map[int64]*entity.Category{},
		brands:     map[int64]*entity.Brand{},
		products:   map[int64]*entity.Product{},
		prodCats:   map[int64][]int64{},
		suppliers:  map[int64]*entity.Supplier{},
	}
}

func (db *memDB) next() int64 {
	db.seq++
	return db.seq
}

func (db *memDB) repos() repository.TxRepos {
	return repository.TxRepos{
		Stores:     &fakeStores{db: db},
		Roles:      &fakeRoles{db: db},
		Users:      &fakeUsers{db: db},
		Aisles:     &fakeAisles{db: db},
		Categories: &fakeCategories{db: db},
		Brands:     &fakeBrands{db: db},
		Products:   &fakeProducts{db: db},
		Stocks:     &fakeStocks{db: db},
		Suppliers:  &fakeSuppliers{db: db},
	}
}

// fakeTx ejecuta fn con los mismos repositorios.
type fakeTx struct{ db *memDB }

func (t fakeTx) Run(_ context.Context, fn func(repository.TxRepos) error) error {
	return fn(t.db.repos())
}

// helpers de siembra

func (db *memDB) addStore(name string) *entity.Store {
	s := &entity.Store{ID: db.next(), Name: name, IsActive: true}
	db.stores[s.ID] = s
	return s
}

func (db *memDB) addRole(name string, perms entity.PermissionSet, storeID *int64) *entity.Role {
	r := &entity.Role{ID: db.next(), Name: name, Permissions: perms, StoreID: storeID}
	db.roles[r.ID] = r
	return r
}

func (db *memDB) addUser(email string, roleID int64, storeID *int64) *entity.User {
	u := &entity.User{ID: db.next(), Email: email, RoleID: roleID, StoreID: storeID, IsActive: true}
	db.users[u.ID] = u
	return u
}

func (db *memDB) addAisle(name string, storeID int64) *entity.Aisle {
	a := &entity.Aisle{ID: db.next(), Name: name, StoreID: storeID}
	db.aisles[a.ID] = a
	return a
}

func (db *memDB) addCategory(name string, aisleID *int64) *entity.Category {
	c := &entity.Category{ID: db.next(), Name: name, AisleID: aisleID}
	db.categories[c.ID] = c
	return c
}

func (db *memDB) addProduct(code string, storeID int64) *entity.Product {
	p := &entity.Product{ID: db.next(), Name: "producto " + code, Code: code, StoreID: storeID, IsActive: true}
	db.products[p.ID] = p
	return p
}

func (db *memDB) addSupplier(name string, storeID int64) *entity.Supplier {
	s := &entity.Supplier{ID: db.next(), Name: name, StoreID: storeID, IsActive: true}
	db.suppliers[s.ID] = s
	return s
}

func (db *memDB) stockOf(productID int64) int64 {
	var sum int64
	for _, e := range db.stocks {
		if e.ProductID == productID {
			sum += e.Quantity
		}
	}
	return sum
}

func sortedValues[T any](m map[int64]*T, keep func(*T) bool) []*T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		if keep(m[id]) {
			cp := *m[id]
			out = append(out, &cp)
		}
	}
	return out
}

type fakeStores struct {
	repository.StoreRepository
	db *memDB
}

func (f *fakeStores) Create(_ context.Context, s *entity.Store) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s.ID = f.db.next()
	cp := *s
	f.db.stores[s.ID] = &cp
	return nil
}

func (f *fakeStores) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.Store, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s, ok := f.db.stores[id]
	if !ok || !scope.Allows(id) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStores) List(_ context.Context, scope access.Scope) ([]*entity.Store, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return sortedValues(f.db.stores, func(s *entity.Store) bool { return scope.Allows(s.ID) }), nil
}

type fakeRoles struct {
	repository.RoleRepository
	db *memDB
}

func (f *fakeRoles) Create(_ context.Context, r *entity.Role) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	r.ID = f.db.next()
	cp := *r
	f.db.roles[r.ID] = &cp
	return nil
}

func (f *fakeRoles) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.Role, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	r, ok := f.db.roles[id]
	if !ok || !scope.AllowsOptional(r.StoreID) {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoles) List(_ context.Context, scope access.Scope) ([]*entity.Role, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return sortedValues(f.db.roles, func(r *entity.Role) bool { return scope.AllowsOptional(r.StoreID) }), nil
}

func (f *fakeRoles) ExistsByName(_ context.Context, name string, storeID *int64, excludeID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, r := range f.db.roles {
		if r.ID != excludeID && r.Name == name && sameStore(r.StoreID, storeID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoles) Update(_ context.Context, r *entity.Role) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *r
	f.db.roles[r.ID] = &cp
	return nil
}

func (f *fakeRoles) CountIncoherentUsers(_ context.Context, roleID int64, storeID *int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for _, u := range f.db.users {
		if u.RoleID == roleID && !tenancy.ValidRoleStore(storeID, u.StoreID) {
			n++
		}
	}
	return n, nil
}

func sameStore(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakeUsers struct {
	repository.UserRepository
	db *memDB
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u.ID = f.db.next()
	cp := *u
	f.db.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) SetAisles(_ context.Context, id int64, aisles []int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.users[id].AisleIDs = aisles
	return nil
}

type fakeAisles struct {
	repository.AisleRepository
	db *memDB
}

func (f *fakeAisles) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.Aisle, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	a, ok := f.db.aisles[id]
	if !ok || !scope.Allows(a.StoreID) {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

type fakeCategories struct {
	repository.CategoryRepository
	db *memDB
}

// visible replica el LEFT JOIN al pasillo: sin pasillo solo en scope global.
func (f *fakeCategories) visible(scope access.Scope, c *entity.Category) bool {
	if c.AisleID == nil {
		return scope.Global
	}
	a, ok := f.db.aisles[*c.AisleID]
	return ok && scope.Allows(a.StoreID)
}

func (f *fakeCategories) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.Category, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.categories[id]
	if !ok || !f.visible(scope, c) {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategories) List(_ context.Context, scope access.Scope) ([]*entity.Category, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return sortedValues(f.db.categories, func(c *entity.Category) bool { return f.visible(scope, c) }), nil
}

type fakeBrands struct {
	repository.BrandRepository
	db *memDB
}

func (f *fakeBrands) GetByID(_ context.Context, id int64) (*entity.Brand, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b, ok := f.db.brands[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

type fakeProducts struct {
	repository.ProductRepository
	db *memDB
}

func (f *fakeProducts) load(p *entity.Product) *entity.Product {
	cp := *p
	cp.InStock = f.db.stockOf(p.ID)
	cp.CategoryIDs = append([]int64(nil), f.db.prodCats[p.ID]...)
	return &cp
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p.ID = f.db.next()
	cp := *p
	f.db.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.Product, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.products[id]
	if !ok || !scope.Allows(p.StoreID) {
		return nil, nil
	}
	return f.load(p), nil
}

func (f *fakeProducts) GetForUpdate(ctx context.Context, scope access.Scope, id int64) (*entity.Product, error) {
	return f.GetByID(ctx, scope, id)
}

func (f *fakeProducts) List(_ context.Context, scope access.Scope) ([]*entity.Product, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entity.Product
	for _, p := range sortedValues(f.db.products, func(p *entity.Product) bool { return scope.Allows(p.StoreID) }) {
		out = append(out, f.load(p))
	}
	return out, nil
}

func (f *fakeProducts) ExistsByCode(_ context.Context, storeID int64, code string, excludeID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, p := range f.db.products {
		if p.ID != excludeID && p.StoreID == storeID && p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *p
	f.db.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Deactivate(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.products[id].IsActive = false
	return nil
}

func (f *fakeProducts) ReferenceCategory(_ context.Context, productID int64) (*entity.Category, bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var ref int64
	for _, cid := range f.db.prodCats[productID] {
		if cid > ref {
			ref = cid
		}
	}
	if ref == 0 {
		return nil, false, nil
	}
	cp := *f.db.categories[ref]
	return &cp, true, nil
}

func (f *fakeProducts) AttachCategory(_ context.Context, productID, categoryID int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, cid := range f.db.prodCats[productID] {
		if cid == categoryID {
			return nil
		}
	}
	f.db.prodCats[productID] = append(f.db.prodCats[productID], categoryID)
	return nil
}

func (f *fakeProducts) AttachSupplier(_ context.Context, link *entity.ProductSupplier) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *link
	f.db.links = append(f.db.links, &cp)
	return nil
}

type fakeStocks struct {
	repository.StockRepository
	db *memDB
}

func (f *fakeStocks) Create(_ context.Context, e *entity.Stock) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e.ID = f.db.next()
	cp := *e
	f.db.stocks = append(f.db.stocks, &cp)
	return nil
}

func (f *fakeStocks) SumByProduct(_ context.Context, productID int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.ledgerSums++
	return f.db.stockOf(productID), nil
}

func (f *fakeStocks) ListByProduct(_ context.Context, productID int64) ([]*entity.Stock, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entity.Stock
	for _, e := range f.db.stocks {
		if e.ProductID == productID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSuppliers struct {
	repository.SupplierRepository
	db *memDB
}

func (f *fakeSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s.ID = f.db.next()
	cp := *s
	f.db.suppliers[s.ID] = &cp
	return nil
}

func (f *fakeSuppliers) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.Supplier, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s, ok := f.db.suppliers[id]
	if !ok || !scope.Allows(s.StoreID) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSuppliers) ExistsByName(_ context.Context, storeID int64, name string, excludeID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, s := range f.db.suppliers {
		if s.ID != excludeID && s.StoreID == storeID && s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// callers

func ptr(v int64) *int64 { return &v }

func callerFor(role *entity.Role, userID int64, storeID *int64) access.Caller {
	return access.Caller{UserID: userID, RoleID: role.ID, RoleName: role.Name, Permissions: role.Permissions, StoreID: storeID}
}

func superAdminCaller() access.Caller {
	return access.Caller{UserID: 999, RoleName: entity.RoleSuperAdmin, Permissions: entity.SuperAdminPermissions()}
}

func starter(name string) entity.PermissionSet {
	for _, s := range entity.StarterRoles() {
		if s.Name == name {
			return s.Permissions
		}
	}
	return nil
}

func (f *fakeProducts) ListActiveByStore(_ context.Context, storeID int64) ([]*entity.Product, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entity.Product
	for _, p := range sortedValues(f.db.products, func(p *entity.Product) bool { return p.IsActive && p.StoreID == storeID }) {
		out = append(out, f.load(p))
	}
	return out, nil
}

func (f *fakeUsers) GetByID(_ context.Context, scope access.Scope, id int64) (*entity.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u, ok := f.db.users[id]
	if !ok || !scope.AllowsOptional(u.StoreID) {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *u
	if cp.PasswordHash == "" {
		cp.PasswordHash = f.db.users[u.ID].PasswordHash
	}
	f.db.users[u.ID] = &cp
	return nil
}
