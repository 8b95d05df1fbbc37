package usecase

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

// SupplierUseCase proveedores de una tienda. La baja es lógica.
type SupplierUseCase struct {
	repos     repository.TxRepos
	companies ports.CompanyLookup
	log       *logger.Logger
}

// NewSupplierUseCase construye el caso de uso. companies puede ser nil.
func NewSupplierUseCase(repos repository.TxRepos, companies ports.CompanyLookup, log *logger.Logger) *SupplierUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierUseCase{repos: repos, companies: companies, log: log.Component("supplier")}
}

// Create da de alta el proveedor en la tienda asignada; nombre único por tienda.
func (uc *SupplierUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	storeID, err := assignStore(ctx, uc.repos.Stores, c, in.StoreID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repos.Suppliers.ExistsByName(ctx, storeID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	s := &entity.Supplier{
		Name: in.Name, Phone: in.Phone, Address: in.Address, Postcode: in.Postcode, City: in.City,
		Contact: in.Contact, Siren: in.Siren, Siret: in.Siret, IsActive: true, StoreID: storeID,
	}
	if s.Address == "" && s.Siret != "" {
		uc.enrich(ctx, s)
	}
	if err := uc.repos.Suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) enrich(ctx context.Context, s *entity.Supplier) {
	if uc.companies == nil {
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
	if s.Siren == "" {
		s.Siren = info.Siren
	}
}

// List proveedores visibles.
func (uc *SupplierUseCase) List(ctx context.Context, c access.Caller) ([]*dto.SupplierResponse, error) {
	list, err := uc.repos.Suppliers.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toSupplierResponse), nil
}

// Get proveedor visible.
func (uc *SupplierUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.SupplierResponse, error) {
	s, err := uc.repos.Suppliers.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// Update modifica el proveedor dentro del scope de gestión.
func (uc *SupplierUseCase) Update(ctx context.Context, c access.Caller, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repos.Suppliers.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != s.Name {
		exists, err := uc.repos.Suppliers.ExistsByName(ctx, s.StoreID, *in.Name, s.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrConflict
		}
		s.Name = *in.Name
	}
	setIfNotNil(&s.Phone, in.Phone)
	setIfNotNil(&s.Address, in.Address)
	setIfNotNil(&s.Postcode, in.Postcode)
	setIfNotNil(&s.City, in.City)
	setIfNotNil(&s.Contact, in.Contact)
	setIfNotNil(&s.Siren, in.Siren)
	setIfNotNil(&s.Siret, in.Siret)
	if err := uc.repos.Suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete baja lógica.
func (uc *SupplierUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	s, err := uc.repos.Suppliers.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Suppliers.Deactivate(ctx, id)
}
