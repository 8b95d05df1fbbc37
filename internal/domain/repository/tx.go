package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Stores     StoreRepository
	Roles      RoleRepository
	Users      UserRepository
	Aisles     AisleRepository
	Categories CategoryRepository
	Brands     BrandRepository
	Products   ProductRepository
	Stocks     StockRepository
	Suppliers  SupplierRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD; Commit si fn devuelve nil, Rollback si no.
// Las reglas de consistencia multi-tienda se evalúan dentro de fn para que sean atómicas con la escritura.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
