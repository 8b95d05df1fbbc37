package usecase

import (
	"context"
	"fmt"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

// StoreUseCase alta, consulta, modificación y baja de tiendas, más el informe de stock.
type StoreUseCase struct {
	repos     repository.TxRepos
	tx        repository.TxRunner
	companies ports.CompanyLookup
	reports   ports.StockReportGenerator
	log       *logger.Logger
}

// NewStoreUseCase construye el caso de uso. companies puede ser nil (sin enriquecimiento).
func NewStoreUseCase(repos repository.TxRepos, tx repository.TxRunner, companies ports.CompanyLookup,
	reports ports.StockReportGenerator, log *logger.Logger) *StoreUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StoreUseCase{repos: repos, tx: tx, companies: companies, reports: reports, log: log.Component("store")}
}

// Create da de alta la tienda y sus roles iniciales en la misma transacción. Solo MANAGE_ALL.
func (uc *StoreUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if !c.Can(access.GlobalOnly()...) {
		return nil, domain.ErrForbidden
	}
	store := &entity.Store{
		Name: in.Name, Address: in.Address, Postcode: in.Postcode, City: in.City,
		Siren: in.Siren, Siret: in.Siret, IsActive: true,
	}
	if store.Address == "" {
		uc.enrich(ctx, store)
	}
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Stores.Create(ctx, store); err != nil {
			return err
		}
		return provisionStarterRoles(ctx, r.Roles, store.ID)
	})
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// provisionStarterRoles crea store manager, purchasing manager y department manager ligados a la tienda.
func provisionStarterRoles(ctx context.Context, roles repository.RoleRepository, storeID int64) error {
	for _, starter := range entity.StarterRoles() {
		sid := storeID
		role := &entity.Role{Name: starter.Name, Permissions: starter.Permissions, StoreID: &sid}
		if err := roles.Create(ctx, role); err != nil {
			return fmt.Errorf("rol inicial %q: %w", starter.Name, err)
		}
	}
	return nil
}

// enrich completa la dirección con el registro de empresas. Un fallo no impide el alta.
func (uc *StoreUseCase) enrich(ctx context.Context, s *entity.Store) {
	if uc.companies == nil || s.Siret == "" {
		return
	}
	info, err := uc.companies.LookupCompany(ctx, s.Siret)
	if err != nil {
		uc.log.Warn().Err(err).Str("siret", s.Siret).Msg("registro de empresas no disponible")
		return
	}
	if info == nil {
		return
	}
	s.Address, s.Postcode, s.City = info.Address, info.Postcode, info.City
}

// List tiendas visibles: todas para llamadores globales, la propia para el resto.
func (uc *StoreUseCase) List(ctx context.Context, c access.Caller) ([]*dto.StoreResponse, error) {
	list, err := uc.repos.Stores.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toStoreResponse), nil
}

// Get devuelve la tienda si es visible; fuera de scope = ErrNotFound.
func (uc *StoreUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.StoreResponse, error) {
	s, err := uc.repos.Stores.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(s), nil
}

// Update modifica la tienda dentro del scope de gestión.
func (uc *StoreUseCase) Update(ctx context.Context, c access.Caller, id int64, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	s, err := uc.repos.Stores.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	setIfNotNil(&s.Name, in.Name)
	setIfNotNil(&s.Address, in.Address)
	setIfNotNil(&s.Postcode, in.Postcode)
	setIfNotNil(&s.City, in.City)
	setIfNotNil(&s.Siren, in.Siren)
	setIfNotNil(&s.Siret, in.Siret)
	setIfNotNil(&s.IsActive, in.IsActive)
	if err := uc.repos.Stores.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// Delete borrado físico en cascada. Solo MANAGE_ALL.
func (uc *StoreUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	if !c.Can(access.GlobalOnly()...) {
		return domain.ErrForbidden
	}
	return uc.repos.Stores.Delete(ctx, id)
}

// StockReport genera el PDF con el stock de los productos activos de la tienda.
func (uc *StoreUseCase) StockReport(ctx context.Context, c access.Caller, id int64) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("generador de informes no configurado")
	}
	s, err := uc.repos.Stores.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.repos.Products.ListActiveByStore(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateStockReport(ctx, s, products)
}
