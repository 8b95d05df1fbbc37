// seed crea el rol y el usuario super admin y, opcionalmente, importa tiendas desde un CSV.
//
// Uso: go run ./cmd/seed
// Variables: SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD, SEED_STORES_CSV (opcional).
// El CSV va separado por ';' en ISO-8859-1: name;address;postcode;city;siren;siret
// Es idempotente: lo que ya existe se omite.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/usecase"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/infrastructure/postgres"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/config"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	adminID, err := seedSuperAdmin(ctx, txRunner, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("super admin")
	}
	log.Info().Int64("user_id", adminID).Str("email", cfg.Seed.AdminEmail).Msg("super admin listo")

	if cfg.Seed.StoresCSV == "" {
		return
	}
	f, err := os.Open(cfg.Seed.StoresCSV)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV de tiendas")
	}
	defer f.Close()

	rows, err := parseStoresCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV de tiendas")
	}

	// Alta vía el caso de uso para que cada tienda reciba sus roles iniciales.
	storeUC := usecase.NewStoreUseCase(repos, txRunner, nil, nil, log)
	caller := access.Caller{
		UserID:      adminID,
		RoleName:    entity.RoleSuperAdmin,
		Permissions: entity.SuperAdminPermissions(),
	}
	created, skipped := 0, 0
	for _, row := range rows {
		_, err := storeUC.Create(ctx, caller, row)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrConflict):
			skipped++
		default:
			log.Fatal().Err(err).Str("siret", row.Siret).Msg("crear tienda")
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("tiendas importadas")
}

// seedSuperAdmin garantiza el rol global y su usuario. Devuelve el id del usuario.
func seedSuperAdmin(ctx context.Context, tx repository.TxRunner, seed config.SeedConfig) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if email == "" || seed.AdminPassword == "" {
		return 0, fmt.Errorf("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son obligatorios")
	}
	var userID int64
	err := tx.Run(ctx, func(r repository.TxRepos) error {
		role, err := findGlobalRole(ctx, r.Roles, entity.RoleSuperAdmin)
		if err != nil {
			return err
		}
		if role == nil {
			role = &entity.Role{Name: entity.RoleSuperAdmin, Permissions: entity.SuperAdminPermissions()}
			if err := r.Roles.Create(ctx, role); err != nil {
				return fmt.Errorf("crear rol: %w", err)
			}
		}

		existing, err := r.Users.FindActiveByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			userID = existing.ID
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user := &entity.User{
			Email:        email,
			PasswordHash: string(hash),
			FirstName:    "Super",
			LastName:     "Admin",
			RoleID:       role.ID,
			IsActive:     true,
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("crear usuario: %w", err)
		}
		userID = user.ID
		return nil
	})
	return userID, err
}

func findGlobalRole(ctx context.Context, roles repository.RoleRepository, name string) (*entity.Role, error) {
	all, err := roles.List(ctx, access.Unrestricted())
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.Name == name && r.StoreID == nil {
			return r, nil
		}
	}
	return nil, nil
}

// parseStoresCSV lee el CSV de tiendas (ISO-8859-1, ';'). Una primera fila con "name" se toma como cabecera.
func parseStoresCSV(r io.Reader) ([]dto.CreateStoreRequest, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	var out []dto.CreateStoreRequest
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		out = append(out, dto.CreateStoreRequest{
			Name:     strings.TrimSpace(rec[0]),
			Address:  strings.TrimSpace(rec[1]),
			Postcode: strings.TrimSpace(rec[2]),
			City:     strings.TrimSpace(rec[3]),
			Siren:    strings.TrimSpace(rec[4]),
			Siret:    strings.TrimSpace(rec[5]),
		})
	}
	return out, nil
}
