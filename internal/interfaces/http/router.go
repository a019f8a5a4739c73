package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/analytics"
	"github.com/mandu619/apa-depto-personal/internal/application/auth"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	EntryUC     *usecase.EntryUseCase
	MovementUC  *usecase.MovementUseCase
	RequestUC   *usecase.RequestUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	ReportUC    *analytics.ReportUseCase
	DashboardUC *analytics.DashboardUseCase
	// Idempotency puede ser nil: sin Redis no se controlan envíos repetidos.
	Idempotency IdempotencyStore
	JWTSecret   string
	JWTIssuer   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	api := app.Group("/api", RequestLogger(log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	writers := RequireRole(Writers...)
	admins := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	// Entradas de stock
	entryHandler := NewEntryHandler(deps.EntryUC, log)
	protected.Get("/entries", entryHandler.List)
	protected.Post("/entries", writers, entryHandler.Create)
	protected.Delete("/entries/:id", writers, entryHandler.Delete)

	// Asignaciones y mermas
	for path, kind := range map[string]entity.MovementKind{
		"/assignments": entity.MovementAssignment,
		"/scrap":       entity.MovementScrap,
	} {
		h := NewMovementHandler(deps.MovementUC, kind, log)
		protected.Get(path, h.List)
		protected.Post(path, writers, Idempotency(deps.Idempotency, string(kind), log), h.Create)
		protected.Delete(path+"/:id", writers, h.Delete)
	}

	// Solicitudes
	requestHandler := NewRequestHandler(deps.RequestUC, log)
	protected.Get("/requests", requestHandler.List)
	protected.Post("/requests", requestHandler.Create)
	protected.Post("/requests/:id/answer", writers, requestHandler.Answer)

	// Informes
	reportHandler := NewReportHandler(deps.ReportUC, log)
	protected.Get("/reports", reportHandler.Run)
	protected.Get("/reports/export.csv", reportHandler.CSV)
	protected.Get("/reports/export.pdf", reportHandler.PDF)

	// Empleados
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, log)
	protected.Get("/workers", writers, employeeHandler.Workers)
	protected.Get("/employees", admins, employeeHandler.List)
	protected.Post("/employees", admins, employeeHandler.Create)
}
