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
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/tenancy"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

// ProductUseCase productos de una tienda: alta, modificación (con restricción de campos por rol),
// asociación de categorías y proveedores. El stock se escribe siempre como asientos del libro.
type ProductUseCase struct {
	repos     repository.TxRepos
	tx        repository.TxRunner
	nutrition ports.NutritionLookup
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso. nutrition puede ser nil (sin enriquecimiento).
func NewProductUseCase(repos repository.TxRepos, tx repository.TxRunner, nutrition ports.NutritionLookup, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repos: repos, tx: tx, nutrition: nutrition, log: log.Component("product")}
}

// Create crea el producto en la tienda asignada, asocia sus categorías y registra el stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	if !entity.ValidStockQuantity(in.InStock) {
		return nil, fmt.Errorf("%w: stock inicial fuera de rango", domain.ErrInvalidInput)
	}
	storeID, err := assignStore(ctx, uc.repos.Stores, c, in.StoreID)
	if err != nil {
		return nil, err
	}
	if in.BrandID != 0 {
		if err := uc.brandExists(ctx, in.BrandID); err != nil {
			return nil, err
		}
	}
	p := &entity.Product{
		Name: in.Name, Code: in.Code, Price: in.Price,
		NutriScore: entity.ParseScore(in.NutriScore), EcoScore: entity.ParseScore(in.EcoScore),
		UnitPackaging: in.UnitPackaging, Threshold: in.Threshold, Ingredients: in.Ingredients,
		IsActive: true, StoreID: storeID, BrandID: in.BrandID,
	}
	if in.NutriScore == "" || in.EcoScore == "" || in.Ingredients == "" {
		uc.enrich(ctx, p, in)
	}

	var id int64
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		exists, err := r.Products.ExistsByCode(ctx, storeID, p.Code, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrConflict
		}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		for _, cid := range in.CategoryIDs {
			if err := attachCategory(ctx, r, c, p, cid); err != nil {
				return err
			}
		}
		if in.InStock > 0 {
			if err := r.Stocks.Create(ctx, &entity.Stock{ProductID: p.ID, Quantity: in.InStock}); err != nil {
				return err
			}
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// enrich rellena scores e ingredientes vacíos con Open Food Facts. Un fallo solo se registra.
func (uc *ProductUseCase) enrich(ctx context.Context, p *entity.Product, in dto.CreateProductRequest) {
	if uc.nutrition == nil {
		return
	}
	info, err := uc.nutrition.LookupProduct(ctx, p.Code)
	if err != nil {
		uc.log.Warn().Err(err).Str("code", p.Code).Msg("consulta nutricional no disponible")
		return
	}
	if info == nil {
		return
	}
	if in.NutriScore == "" && info.NutriScore != "" {
		p.NutriScore = entity.ParseScore(info.NutriScore)
	}
	if in.EcoScore == "" && info.EcoScore != "" {
		p.EcoScore = entity.ParseScore(info.EcoScore)
	}
	if in.Ingredients == "" {
		p.Ingredients = info.Ingredients
	}
}

func (uc *ProductUseCase) brandExists(ctx context.Context, id int64) error {
	b, err := uc.repos.Brands.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: marca %d", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *ProductUseCase) reload(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, access.Unrestricted(), id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// attachCategory asocia una categoría visible para el caller, de la misma tienda que el producto
// y del mismo pasillo que la categoría de referencia. El producto debe estar bloqueado (FOR UPDATE)
// o recién creado en la misma transacción.
func attachCategory(ctx context.Context, r repository.TxRepos, c access.Caller, p *entity.Product, categoryID int64) error {
	cat, err := r.Categories.GetByID(ctx, c.ReadScope(), categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, categoryID)
	}
	if cat.AisleID != nil {
		aisle, err := r.Aisles.GetByID(ctx, access.Unrestricted(), *cat.AisleID)
		if err != nil {
			return err
		}
		if aisle == nil || aisle.StoreID != p.StoreID {
			return fmt.Errorf("%w: la categoría %d es de otra tienda", domain.ErrConstraintViolation, categoryID)
		}
	}
	ref, hasRef, err := r.Products.ReferenceCategory(ctx, p.ID)
	if err != nil {
		return err
	}
	var refAisle *int64
	if hasRef {
		if ref.ID == categoryID {
			return nil
		}
		refAisle = ref.AisleID
	}
	if !tenancy.SameAisle(refAisle, hasRef, cat.AisleID) {
		return fmt.Errorf("%w: la categoría %d no está en el pasillo del producto", domain.ErrConstraintViolation, categoryID)
	}
	return r.Products.AttachCategory(ctx, p.ID, categoryID)
}

// List productos visibles con su stock.
func (uc *ProductUseCase) List(ctx context.Context, c access.Caller) ([]*dto.ProductResponse, error) {
	list, err := uc.repos.Products.List(ctx, c.ReadScope())
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toProductResponse), nil
}

// Get producto visible con su stock.
func (uc *ProductUseCase) Get(ctx context.Context, c access.Caller, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, c.ReadScope(), id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Update aplica la modificación. payloadKeys son las claves JSON presentes en la petición:
// se validan contra la restricción de campos del rol antes de tocar la base.
// InStock es un valor objetivo; se registra un asiento con la diferencia respecto al stock actual.
func (uc *ProductUseCase) Update(ctx context.Context, c access.Caller, id int64, payloadKeys []string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := access.CheckFields(c, access.OpProductUpdate, payloadKeys); err != nil {
		return nil, err
	}
	if in.ID != nil && *in.ID != id {
		return nil, fmt.Errorf("%w: id del cuerpo distinto del de la ruta", domain.ErrInvalidInput)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	if in.BrandID != nil && *in.BrandID != 0 {
		if err := uc.brandExists(ctx, *in.BrandID); err != nil {
			return nil, err
		}
	}

	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products.GetForUpdate(ctx, c.ManageScope(), id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Code != nil && *in.Code != p.Code {
			exists, err := r.Products.ExistsByCode(ctx, p.StoreID, *in.Code, p.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrConflict
			}
			p.Code = *in.Code
		}
		setIfNotNil(&p.Name, in.Name)
		setIfNotNil(&p.Price, in.Price)
		setIfNotNil(&p.UnitPackaging, in.UnitPackaging)
		setIfNotNil(&p.Threshold, in.Threshold)
		setIfNotNil(&p.Ingredients, in.Ingredients)
		setIfNotNil(&p.BrandID, in.BrandID)
		if in.NutriScore != nil {
			p.NutriScore = entity.ParseScore(*in.NutriScore)
		}
		if in.EcoScore != nil {
			p.EcoScore = entity.ParseScore(*in.EcoScore)
		}
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		if in.InStock != nil {
			// el libro se suma bajo el bloqueo de la fila: dos ajustes concurrentes no calculan la misma diferencia
			current, err := r.Stocks.SumByProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			delta := *in.InStock - current
			if !entity.ValidStockQuantity(delta) {
				return fmt.Errorf("%w: ajuste de stock fuera de rango", domain.ErrInvalidInput)
			}
			if delta != 0 {
				return r.Stocks.Create(ctx, &entity.Stock{ProductID: p.ID, Quantity: delta})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// Delete borrado lógico (is_active = false).
func (uc *ProductUseCase) Delete(ctx context.Context, c access.Caller, id int64) error {
	p, err := uc.repos.Products.GetByID(ctx, c.ManageScope(), id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Products.Deactivate(ctx, id)
}

// AttachCategories asocia categorías con el producto bloqueado, para que asociaciones
// concurrentes del mismo producto se serialicen.
func (uc *ProductUseCase) AttachCategories(ctx context.Context, c access.Caller, id int64, in dto.AttachCategoriesRequest) (*dto.ProductResponse, error) {
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products.GetForUpdate(ctx, c.ManageScope(), id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		for _, cid := range in.CategoryIDs {
			if err := attachCategory(ctx, r, c, p, cid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// AttachSupplier asocia un proveedor de la misma tienda con su precio de compra.
func (uc *ProductUseCase) AttachSupplier(ctx context.Context, c access.Caller, id int64, in dto.AttachSupplierRequest) error {
	if in.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: precio de compra negativo", domain.ErrInvalidInput)
	}
	return uc.tx.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products.GetForUpdate(ctx, c.ManageScope(), id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		s, err := r.Suppliers.GetByID(ctx, c.ReadScope(), in.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, in.SupplierID)
		}
		if s.StoreID != p.StoreID {
			return fmt.Errorf("%w: el proveedor es de otra tienda", domain.ErrConstraintViolation)
		}
		return r.Products.AttachSupplier(ctx, &entity.ProductSupplier{
			ProductID: p.ID, SupplierID: s.ID, PurchasePrice: in.PurchasePrice,
		})
	})
}

// StockUseCase libro de existencias de un producto.
type StockUseCase struct {
	repos repository.TxRepos
	tx    repository.TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repos repository.TxRepos, tx repository.TxRunner) *StockUseCase {
	return &StockUseCase{repos: repos, tx: tx}
}

// AddEntry registra un asiento. El producto se bloquea para que el asiento no se cruce
// con una modificación de inStock concurrente.
func (uc *StockUseCase) AddEntry(ctx context.Context, c access.Caller, productID int64, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.Quantity == 0 {
		return nil, fmt.Errorf("%w: cantidad cero", domain.ErrInvalidInput)
	}
	if !entity.ValidStockQuantity(in.Quantity) {
		return nil, fmt.Errorf("%w: cantidad fuera de rango", domain.ErrInvalidInput)
	}
	entry := &entity.Stock{ProductID: productID, Quantity: in.Quantity}
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products.GetForUpdate(ctx, c.ManageScope(), productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return r.Stocks.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(entry), nil
}

// List asientos de un producto visible.
func (uc *StockUseCase) List(ctx context.Context, c access.Caller, productID int64) ([]*dto.StockResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, c.ReadScope(), productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Stocks.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toStockResponse), nil
}
