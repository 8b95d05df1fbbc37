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

// AisleUseCase gestión de pasillos de una tienda.
type AisleUseCase struct {
	repos repository.TxRepos
}

// NewAisleUseCase construye el caso de uso.
func NewAisleUseCase(repos repository.TxRepos) *AisleUseCase {
	return &AisleUseCase{repos: repos}
}

func (uc *AisleUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateAisleRequest) (*dto.AisleResponse, error) {
	storeID, err := assignStore(ctx, uc.repos.Stores, c, in.StoreID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repos.Aisles.ExistsByName(ctx, storeID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	a := &entity.Aisle{Name: in.Name, StoreID: storeID}
	if err := uc.repos.Aisles.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAisleResponse(a), nil
}

func (uc *AisleUseCase) List(ctx context.Context, c access.Caller) ([]*dto.AisleResponse, error) {
	list, err := uc.repos.Aisles.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toAisleResponse), nil
}

func (uc *AisleUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.AisleResponse, error) {
	a, err := uc.repos.Aisles.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAisleResponse(a), nil
}

func (uc *AisleUseCase) Update(ctx context.Context, c access.Caller, id int64, in dto.UpdateAisleRequest) (*dto.AisleResponse, error) {
	a, err := uc.repos.Aisles.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repos.Aisles.ExistsByName(ctx, a.StoreID, in.Name, a.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	a.Name = in.Name
	if err := uc.repos.Aisles.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAisleResponse(a), nil
}

// Delete borrado físico; las categorías del pasillo caen en cascada.
func (uc *AisleUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	a, err := uc.repos.Aisles.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Aisles.Delete(ctx, id)
}

// CategoryUseCase gestión de categorías. El scope se resuelve a través del pasillo.
type CategoryUseCase struct {
	repos repository.TxRepos
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repos repository.TxRepos) *CategoryUseCase {
	return &CategoryUseCase{repos: repos}
}

// Create crea la categoría. Sin pasillo solo para llamadores con gestión global:
// para el resto quedaría fuera de su propio scope.
func (uc *CategoryUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	scope := c.ManageScope()
	if in.AisleID == nil && !scope.Global {
		return nil, fmt.Errorf("%w: el pasillo es obligatorio", domain.ErrInvalidInput)
	}
	if in.AisleID != nil {
		aisle, err := uc.repos.Aisles.GetByID(ctx, scope, *in.AisleID)
		if err != nil {
			return nil, err
		}
		if aisle == nil {
			return nil, fmt.Errorf("%w: pasillo %d", domain.ErrNotFound, *in.AisleID)
		}
	}
	exists, err := uc.repos.Categories.ExistsByName(ctx, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	cat := &entity.Category{Name: in.Name, AisleID: in.AisleID}
	if err := uc.repos.Categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, c access.Caller) ([]*dto.CategoryResponse, error) {
	list, err := uc.repos.Categories.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toCategoryResponse), nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.CategoryResponse, error) {
	cat, err := uc.repos.Categories.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(cat), nil
}

// Update renombra la categoría. El pasillo no cambia tras el alta (las asociaciones same-aisle dependen de él).
func (uc *CategoryUseCase) Update(ctx context.Context, c access.Caller, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.repos.Categories.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repos.Categories.ExistsByName(ctx, in.Name, cat.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	cat.Name = in.Name
	if err := uc.repos.Categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	cat, err := uc.repos.Categories.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Categories.Delete(ctx, id)
}

// BrandUseCase marcas: catálogo global, sin tienda.
type BrandUseCase struct {
	repos repository.TxRepos
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repos repository.TxRepos) *BrandUseCase {
	return &BrandUseCase{repos: repos}
}

func (uc *BrandUseCase) Create(ctx context.Context, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	exists, err := uc.repos.Brands.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	b := &entity.Brand{Name: in.Name}
	if err := uc.repos.Brands.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

func (uc *BrandUseCase) List(ctx context.Context) ([]*dto.BrandResponse, error) {
	list, err := uc.repos.Brands.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toBrandResponse), nil
}

func (uc *BrandUseCase) Get(ctx context.Context, id int64) (*dto.BrandResponse, error) {
	b, err := uc.repos.Brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBrandResponse(b), nil
}
