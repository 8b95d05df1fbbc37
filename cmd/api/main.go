package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/auth"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/usecase"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/infrastructure/enrichment"
	infrapdf "github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/infrastructure/pdf"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/interfaces/http"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/config"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/jwt"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	signer := &jwt.Signer{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Issuer:        cfg.JWT.Issuer,
		AccessTTL:     cfg.JWT.AccessTTL(),
		RefreshTTL:    cfg.JWT.RefreshTTL(),
	}

	// Enriquecimiento externo: nil = desactivado (los casos de uso lo toleran).
	var (
		nutrition ports.NutritionLookup
		companies ports.CompanyLookup
	)
	if cfg.Enrich.Enabled {
		userAgent := cfg.App.Name + "/1.0"
		nutrition = enrichment.NewOpenFoodFacts(cfg.Enrich, userAgent)
		companies = enrichment.NewCompanyRegistry(cfg.Enrich, userAgent)
	}

	authUC := auth.NewAuthUseCase(repos.Users, repos.Stores, signer, log)
	storeUC := usecase.NewStoreUseCase(repos, txRunner, companies, infrapdf.NewStockReportGenerator(), log)
	roleUC := usecase.NewRoleUseCase(repos, txRunner)
	userUC := usecase.NewUserUseCase(repos, txRunner)
	aisleUC := usecase.NewAisleUseCase(repos)
	categoryUC := usecase.NewCategoryUseCase(repos)
	brandUC := usecase.NewBrandUseCase(repos)
	productUC := usecase.NewProductUseCase(repos, txRunner, nutrition, log)
	stockUC := usecase.NewStockUseCase(repos, txRunner)
	supplierUC := usecase.NewSupplierUseCase(repos, companies, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestion de magasin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		StoreUC:    storeUC,
		RoleUC:     roleUC,
		UserUC:     userUC,
		AisleUC:    aisleUC,
		CategoryUC: categoryUC,
		BrandUC:    brandUC,
		ProductUC:  productUC,
		StockUC:    stockUC,
		SupplierUC: supplierUC,
		Signer:     signer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
