package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/auth"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/usecase"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	StoreUC    *usecase.StoreUseCase
	RoleUC     *usecase.RoleUseCase
	UserUC     *usecase.UserUseCase
	AisleUC    *usecase.AisleUseCase
	CategoryUC *usecase.CategoryUseCase
	BrandUC    *usecase.BrandUseCase
	ProductUC  *usecase.ProductUseCase
	StockUC    *usecase.StockUseCase
	SupplierUC *usecase.SupplierUseCase
	Signer     *jwt.Signer
}

func canRead(kind entity.ResourceKind) fiber.Handler {
	return RequirePermission(access.ReadRequirement(kind)...)
}

func canManage(kind entity.ResourceKind) fiber.Handler {
	return RequirePermission(access.ManageRequirement(kind)...)
}

// Router registra las rutas de la API. Cada ruta protegida declara su requisito de permisos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login y refresh públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	requireAuth := AuthMiddleware(deps.Signer)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Post("/select-store", requireAuth, authHandler.SelectStore)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", RequirePermission(access.GlobalOnly()...), storeHandler.Create)
	stores.Get("/", canRead(entity.ResourceStore), storeHandler.List)
	stores.Get("/:id", canRead(entity.ResourceStore), storeHandler.GetByID)
	stores.Patch("/:id", canManage(entity.ResourceStore), storeHandler.Update)
	stores.Delete("/:id", RequirePermission(access.GlobalOnly()...), storeHandler.Delete)
	stores.Get("/:id/stock-report", canRead(entity.ResourceStock), storeHandler.StockReport)

	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/", canManage(entity.ResourceRole), roleHandler.Create)
	roles.Get("/", canRead(entity.ResourceRole), roleHandler.List)
	roles.Get("/:id", canRead(entity.ResourceRole), roleHandler.GetByID)
	roles.Patch("/:id", canManage(entity.ResourceRole), roleHandler.Update)
	roles.Delete("/:id", canManage(entity.ResourceRole), roleHandler.Delete)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", canManage(entity.ResourceUser), userHandler.Create)
	users.Get("/", canRead(entity.ResourceUser), userHandler.List)
	users.Get("/:id", canRead(entity.ResourceUser), userHandler.GetByID)
	users.Patch("/:id", canManage(entity.ResourceUser), userHandler.Update)
	users.Delete("/:id", canManage(entity.ResourceUser), userHandler.Delete)

	aisles := protected.Group("/aisles")
	aisleHandler := NewAisleHandler(deps.AisleUC)
	aisles.Post("/", canManage(entity.ResourceAisle), aisleHandler.Create)
	aisles.Get("/", canRead(entity.ResourceAisle), aisleHandler.List)
	aisles.Get("/:id", canRead(entity.ResourceAisle), aisleHandler.GetByID)
	aisles.Patch("/:id", canManage(entity.ResourceAisle), aisleHandler.Update)
	aisles.Delete("/:id", canManage(entity.ResourceAisle), aisleHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", canManage(entity.ResourceCategory), categoryHandler.Create)
	categories.Get("/", canRead(entity.ResourceCategory), categoryHandler.List)
	categories.Get("/:id", canRead(entity.ResourceCategory), categoryHandler.GetByID)
	categories.Patch("/:id", canManage(entity.ResourceCategory), categoryHandler.Update)
	categories.Delete("/:id", canManage(entity.ResourceCategory), categoryHandler.Delete)

	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Post("/", canManage(entity.ResourceBrand), brandHandler.Create)
	brands.Get("/", canRead(entity.ResourceBrand), brandHandler.List)
	brands.Get("/:id", canRead(entity.ResourceBrand), brandHandler.GetByID)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Post("/", canManage(entity.ResourceProduct), productHandler.Create)
	products.Get("/", canRead(entity.ResourceProduct), productHandler.List)
	products.Get("/:id", canRead(entity.ResourceProduct), productHandler.GetByID)
	products.Patch("/:id", canManage(entity.ResourceProduct), productHandler.Update)
	products.Delete("/:id", canManage(entity.ResourceProduct), productHandler.Delete)
	products.Post("/:id/categories", canManage(entity.ResourceProduct), productHandler.AttachCategories)
	products.Post("/:id/suppliers", canManage(entity.ResourceProduct), productHandler.AttachSupplier)
	products.Post("/:id/stocks", canManage(entity.ResourceStock), productHandler.AddStock)
	products.Get("/:id/stocks", canRead(entity.ResourceStock), productHandler.ListStock)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", canManage(entity.ResourceSupplier), supplierHandler.Create)
	suppliers.Get("/", canRead(entity.ResourceSupplier), supplierHandler.List)
	suppliers.Get("/:id", canRead(entity.ResourceSupplier), supplierHandler.GetByID)
	suppliers.Patch("/:id", canManage(entity.ResourceSupplier), supplierHandler.Update)
	suppliers.Delete("/:id", canManage(entity.ResourceSupplier), supplierHandler.Delete)
}
