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

	_ "github.com/mandu619/apa-depto-personal/docs"
	"github.com/mandu619/apa-depto-personal/internal/application/analytics"
	"github.com/mandu619/apa-depto-personal/internal/application/auth"
	"github.com/mandu619/apa-depto-personal/internal/application/ledger"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/cache"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/memory"
	infrapdf "github.com/mandu619/apa-depto-personal/internal/infrastructure/pdf"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/postgres"
	httpRouter "github.com/mandu619/apa-depto-personal/internal/interfaces/http"
	"github.com/mandu619/apa-depto-personal/pkg/config"
	"github.com/mandu619/apa-depto-personal/pkg/logger"
)

// stores agrupa los repositorios y el TxRunner del driver elegido.
type stores struct {
	txRunner  ledger.TxRunner
	entries   repository.StockEntryRepository
	movements repository.MovementRepository
	requests  repository.RequestRepository
	users     repository.UserRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	// Idempotency-Key en asignaciones y mermas (opcional).
	var idem httpRouter.IdempotencyStore
	if cfg.Redis.Enabled() {
		client, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		idem = cache.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("claves de idempotencia activas")
	}

	ledgerSvc := ledger.NewService(st.txRunner, ledger.Config{MaxAttempts: cfg.Ledger.MaxAttempts}, log.Zerolog())

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	entryUC := usecase.NewEntryUseCase(st.entries, ledgerSvc)
	movementUC := usecase.NewMovementUseCase(ledgerSvc, st.movements)
	requestUC := usecase.NewRequestUseCase(st.requests)
	employeeUC := usecase.NewEmployeeUseCase(st.users)

	// PDF: informe de asignaciones y mermas
	reportUC := analytics.NewReportUseCase(st.entries, st.movements, infrapdf.NewReportPDF(""))
	dashboardUC := analytics.NewDashboardUseCase(st.entries, st.movements, st.requests)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "APA Depto. Personal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		EntryUC:     entryUC,
		MovementUC:  movementUC,
		RequestUC:   requestUC,
		EmployeeUC:  employeeUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		Idempotency: idem,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log.Component("http"),
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

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		mem := memory.New()
		return &stores{
			txRunner:  mem,
			entries:   mem.Entries(),
			movements: mem.Movements(),
			requests:  mem.Requests(),
			users:     mem.Users(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &stores{
		txRunner:  postgres.NewTxRunner(pool),
		entries:   postgres.NewStockEntryRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		requests:  postgres.NewRequestRepository(pool),
		users:     postgres.NewUserRepository(pool),
		close:     pool.Close,
	}, nil
}
