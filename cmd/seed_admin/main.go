// seed_admin crea la primera cuenta de administrador para poder entrar al panel.
//
// Uso: go run ./cmd/seed_admin -email admin@apa.cl -password ****** [-first Ana] [-last Pérez]
// Los flags se pueden reemplazar por SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD, SEED_ADMIN_FIRST
// y SEED_ADMIN_LAST. La conexión usa la misma configuración que la API (DATABASE_URL, DB_*).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/postgres"
	"github.com/mandu619/apa-depto-personal/pkg/config"
	"github.com/mandu619/apa-depto-personal/pkg/logger"
)

// seedActor firma el alta como createdBy.
var seedActor = entity.Actor{UserID: "seed_admin", Name: "seed_admin", Role: entity.RoleAdmin}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	first := flag.String("first", envOr("SEED_ADMIN_FIRST", "Administrador"), "nombre")
	last := flag.String("last", envOr("SEED_ADMIN_LAST", "APA"), "apellido")
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "email de acceso")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña (mínimo 6 caracteres)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_admin"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	employees := usecase.NewEmployeeUseCase(postgres.NewUserRepository(pool))
	out, err := employees.Create(ctx, seedActor, dto.CreateEmployeeRequest{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
		Role:      entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Warn().Str("email", *email).Msg("el administrador ya existe, no se modifica")
		return
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("id", out.ID).Str("email", out.Email).Msg("administrador creado")
}
