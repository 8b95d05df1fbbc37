package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// in_stock = suma del libro de stock; category_ids ordenados por id.
const productSelect = `SELECT p.id, p.name, p.code, p.price, p.nutri_score, p.eco_score, p.unit_packaging,
	p.threshold, p.ingredients, p.is_active, p.store_id, COALESCE(p.brand_id, 0),
	ARRAY(SELECT pc.category_id FROM product_category pc WHERE pc.product_id = p.id ORDER BY pc.category_id),
	COALESCE((SELECT SUM(s.quantity) FROM stock s WHERE s.product_id = p.id), 0),
	p.created_at, p.updated_at
	FROM product p`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		nutri, eco string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Price, &nutri, &eco, &p.UnitPackaging,
		&p.Threshold, &p.Ingredients, &p.IsActive, &p.StoreID, &p.BrandID,
		&p.CategoryIDs, &p.InStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.NutriScore = entity.ParseScore(nutri)
	p.EcoScore = entity.ParseScore(eco)
	return &p, nil
}

// Create persiste un nuevo producto. El stock inicial se registra aparte en el libro.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO product (name, code, price, nutri_score, eco_score, unit_packaging, threshold, ingredients,
			is_active, store_id, brand_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Code, p.Price, string(p.NutriScore), string(p.EcoScore), p.UnitPackaging, p.Threshold,
		p.Ingredients, p.IsActive, p.StoreID, nullableID(p.BrandID),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto visible en el scope, con stock y categorías.
func (r *ProductRepo) GetByID(ctx context.Context, scope access.Scope, id int64) (*entity.Product, error) {
	clause, args := scopeClause(scope, "p.store_id", []any{id})
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto y luego la lee completa. Solo tiene efecto dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, scope access.Scope, id int64) (*entity.Product, error) {
	clause, args := scopeClause(scope, "store_id", []any{id})
	var locked int64
	err := r.q.QueryRow(ctx, `SELECT id FROM product WHERE id = $1`+clause+` FOR UPDATE`, args...).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return r.GetByID(ctx, access.Unrestricted(), locked)
}

// List lista los productos visibles en el scope.
func (r *ProductRepo) List(ctx context.Context, scope access.Scope) ([]*entity.Product, error) {
	clause, args := scopeClause(scope, "p.store_id", nil)
	return r.list(ctx, productSelect+` WHERE TRUE`+clause+` ORDER BY p.id`, args...)
}

// ListActiveByStore productos activos de una tienda (informe de stock).
func (r *ProductRepo) ListActiveByStore(ctx context.Context, storeID int64) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE p.store_id = $1 AND p.is_active ORDER BY p.name`, storeID)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ExistsByCode código único dentro de la tienda.
func (r *ProductRepo) ExistsByCode(ctx context.Context, storeID int64, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product WHERE store_id = $1 AND code = $2 AND id <> $3)`,
		storeID, code, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos del producto. No toca stock (libro) ni tienda.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		UPDATE product SET name = $2, code = $3, price = $4, nutri_score = $5, eco_score = $6,
			unit_packaging = $7, threshold = $8, ingredients = $9, brand_id = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Code, p.Price, string(p.NutriScore), string(p.EcoScore),
		p.UnitPackaging, p.Threshold, p.Ingredients, nullableID(p.BrandID),
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("product", p.ID)
		}
		return mapWriteError("update product", err)
	}
	return nil
}

// Deactivate borrado lógico del producto.
func (r *ProductRepo) Deactivate(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE product SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("product", id)
	}
	return nil
}

// ReferenceCategory categoría asociada de mayor id.
func (r *ProductRepo) ReferenceCategory(ctx context.Context, productID int64) (*entity.Category, bool, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `
		SELECT c.id, c.name, c.aisle_id, c.created_at, c.updated_at
		FROM product_category pc JOIN category c ON c.id = pc.category_id
		WHERE pc.product_id = $1
		ORDER BY pc.category_id DESC
		LIMIT 1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reference category: %w", err)
	}
	return c, true, nil
}

// AttachCategory asocia la categoría. La CHECK same_aisle actúa como segunda barrera (23514).
func (r *ProductRepo) AttachCategory(ctx context.Context, productID, categoryID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_category (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		productID, categoryID)
	if err != nil {
		return mapWriteError("attach category", err)
	}
	return nil
}

// AttachSupplier asocia (o actualiza el precio de compra de) un proveedor.
func (r *ProductRepo) AttachSupplier(ctx context.Context, link *entity.ProductSupplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_supplier (product_id, supplier_id, purchase_price) VALUES ($1, $2, $3)
		ON CONFLICT (product_id, supplier_id) DO UPDATE SET purchase_price = EXCLUDED.purchase_price`,
		link.ProductID, link.SupplierID, link.PurchasePrice)
	if err != nil {
		return mapWriteError("attach supplier", err)
	}
	return nil
}
