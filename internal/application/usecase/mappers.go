package usecase

import (
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID: s.ID, Name: s.Name, Address: s.Address, Postcode: s.Postcode, City: s.City,
		Siren: s.Siren, Siret: s.Siret, IsActive: s.IsActive, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID: r.ID, Name: r.Name, Permissions: r.Permissions.Strings(), Store: dto.NewIDRef(r.StoreID),
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	aisles := u.AisleIDs
	if aisles == nil {
		aisles = []int64{}
	}
	return &dto.UserResponse{
		ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
		Role: dto.IDRef{ID: u.RoleID}, Store: dto.NewIDRef(u.StoreID), Aisles: aisles,
		IsActive: u.IsActive, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func toAisleResponse(a *entity.Aisle) *dto.AisleResponse {
	return &dto.AisleResponse{ID: a.ID, Name: a.Name, Store: dto.IDRef{ID: a.StoreID}, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Aisle: dto.NewIDRef(c.AisleID), CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	cats := p.CategoryIDs
	if cats == nil {
		cats = []int64{}
	}
	var brand *dto.IDRef
	if p.BrandID != 0 {
		brand = &dto.IDRef{ID: p.BrandID}
	}
	return &dto.ProductResponse{
		ID: p.ID, Name: p.Name, Code: p.Code, Price: p.Price,
		NutriScore: string(p.NutriScore), EcoScore: string(p.EcoScore),
		UnitPackaging: p.UnitPackaging, Threshold: p.Threshold, Ingredients: p.Ingredients,
		IsActive: p.IsActive, Store: dto.IDRef{ID: p.StoreID}, Brand: brand,
		Categories: cats, InStock: p.InStock, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{ID: s.ID, Product: dto.IDRef{ID: s.ProductID}, Quantity: s.Quantity, CreatedAt: s.CreatedAt}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID: s.ID, Name: s.Name, Phone: s.Phone, Address: s.Address, Postcode: s.Postcode, City: s.City,
		Contact: s.Contact, Siren: s.Siren, Siret: s.Siret, IsActive: s.IsActive, Store: dto.IDRef{ID: s.StoreID},
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func mapSlice[E any, R any](in []E, f func(E) R) []R {
	out := make([]R, 0, len(in))
	for _, e := range in {
		out = append(out, f(e))
	}
	return out
}
