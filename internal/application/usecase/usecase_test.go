package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/ledger"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/memory"
)

var (
	admin    = entity.Actor{UserID: "u-admin", Name: "Ana Admin", Role: entity.RoleAdmin}
	operator = entity.Actor{UserID: "u-op", Name: "Olga Operadora", Role: entity.RoleOperator}
	viewer   = entity.Actor{UserID: "u-view", Name: "Carlos Consulta", Role: entity.RoleConsulta}
)

type fixture struct {
	store     *memory.Store
	entries   *usecase.EntryUseCase
	movements *usecase.MovementUseCase
	requests  *usecase.RequestUseCase
	employees *usecase.EmployeeUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	svc := ledger.NewService(store, ledger.Config{}, zerolog.Nop())
	return &fixture{
		store:     store,
		entries:   usecase.NewEntryUseCase(store.Entries(), svc),
		movements: usecase.NewMovementUseCase(svc, store.Movements()),
		requests:  usecase.NewRequestUseCase(store.Requests()),
		employees: usecase.NewEmployeeUseCase(store.Users()),
	}
}

func (f *fixture) entry(t *testing.T, date, typ, desc string, qty int) dto.EntryResponse {
	t.Helper()
	out, err := f.entries.Create(context.Background(), operator, dto.CreateEntryRequest{
		Date: date, Type: typ, Description: desc, Quantity: qty,
	})
	require.NoError(t, err)
	return *out
}

// ─────────────────────────────────────────────────────────────────────────────
// Entradas
// ─────────────────────────────────────────────────────────────────────────────

func TestEntryUseCase_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.entries.Create(ctx, operator, dto.CreateEntryRequest{
		Date: " 2026-04-01 ", Type: "EPP", Description: " Casco ", Reference: "OC-9", Quantity: 12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "2026-04-01", out.Date)
	assert.Equal(t, 12, out.QuantityReceived)
	assert.Equal(t, 12, out.QuantityAvailable, "una entrada nueva tiene todo disponible")
	assert.Equal(t, "EPP · Casco", out.Label)
	assert.Equal(t, operator.Name, out.CreatedByName)

	_, err = f.entries.Create(ctx, viewer, dto.CreateEntryRequest{Date: "2026-04-01", Type: "EPP", Description: "x", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.entries.Create(ctx, operator, dto.CreateEntryRequest{Date: "2026-04-01", Type: "EPP", Description: "x", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.entries.Create(ctx, operator, dto.CreateEntryRequest{Date: "01-04-2026", Type: "EPP", Description: "x", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Fuera del rango de INTEGER en PostgreSQL: se rechaza como validación, no como error interno.
	_, err = f.entries.Create(ctx, operator, dto.CreateEntryRequest{Date: "2026-04-01", Type: "EPP", Description: "x", Quantity: math.MaxInt32 + 1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
}

func TestEntryUseCase_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.entry(t, "2026-04-01", "EPP", "Guantes de nitrilo", 5)
	f.entry(t, "2026-04-03", "Útiles", "Lápiz grafito", 10)
	used := f.entry(t, "2026-04-02", "EPP", "Mascarilla", 2)
	_, err := f.movements.Record(ctx, operator, entity.MovementScrap, dto.CreateMovementRequest{
		Date: "2026-04-04", EntryID: used.ID, Quantity: 2, Reason: "Vencimiento",
	})
	require.NoError(t, err)

	all, err := f.entries.List(ctx, dto.EntryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-04-03", all[0].Date)

	byText, err := f.entries.List(ctx, dto.EntryQuery{Text: "utiles"})
	require.NoError(t, err)
	require.Len(t, byText, 1, "la búsqueda ignora tildes")
	assert.Equal(t, "Lápiz grafito", byText[0].Description)

	available, err := f.entries.List(ctx, dto.EntryQuery{Type: "EPP", OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Guantes de nitrilo", available[0].Description)

	limited, err := f.entries.List(ctx, dto.EntryQuery{Text: "e", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEntryUseCase_DeleteGoesThroughLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.entry(t, "2026-04-01", "EPP", "Botas", 3)
	mov, err := f.movements.Record(ctx, operator, entity.MovementAssignment, dto.CreateMovementRequest{
		Date: "2026-04-02", EntryID: e.ID, Quantity: 1, Reason: "Ingreso", Worker: "Luis",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.entries.Delete(ctx, operator, e.ID), domain.ErrEntryHasDependents)
	require.NoError(t, f.movements.Delete(ctx, operator, entity.MovementAssignment, mov.ID))
	require.NoError(t, f.entries.Delete(ctx, operator, e.ID))
	assert.ErrorIs(t, f.entries.Delete(ctx, operator, e.ID), domain.ErrEntryNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Movimientos
// ─────────────────────────────────────────────────────────────────────────────

func TestMovementUseCase_RecordAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.entry(t, "2026-04-01", "EPP", "Guantes", 10)

	for i, w := range []string{"José Muñoz", "Ana Pérez", "Josefina Díaz"} {
		_, err := f.movements.Record(ctx, operator, entity.MovementAssignment, dto.CreateMovementRequest{
			Date: "2026-04-0" + string(rune('2'+i)), EntryID: e.ID, Quantity: 1, Reason: "Reposición", Worker: w,
		})
		require.NoError(t, err)
	}
	sc, err := f.movements.Record(ctx, operator, entity.MovementScrap, dto.CreateMovementRequest{
		Date: "2026-04-05", EntryID: e.ID, Quantity: 2, Reason: entity.ScrapReasonOther, Detail: "roto", Worker: "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "scrap", sc.Kind)
	assert.Empty(t, sc.Worker)
	assert.Equal(t, "roto", sc.Detail)

	list, err := f.movements.List(ctx, entity.MovementAssignment, dto.MovementQuery{Text: "jose"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Josefina Díaz", list[0].Worker, "más reciente primero")

	ranged, err := f.movements.List(ctx, entity.MovementAssignment, dto.MovementQuery{From: "2026-04-03", To: "2026-04-03"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "Ana Pérez", ranged[0].Worker)

	_, err = f.movements.List(ctx, entity.MovementAssignment, dto.MovementQuery{From: "2026-04-05", To: "2026-04-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.movements.List(ctx, "transfer", dto.MovementQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	entries, err := f.entries.List(ctx, dto.EntryQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, entries[0].QuantityAvailable)
}

// ─────────────────────────────────────────────────────────────────────────────
// Solicitudes
// ─────────────────────────────────────────────────────────────────────────────

func TestRequestUseCase_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.requests.Create(ctx, viewer, dto.CreateRequestRequest{Type: "Insumos", Text: "Faltan guantes talla M"})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, req.Status)
	assert.Equal(t, entity.PriorityNormal, req.Priority)
	assert.Equal(t, viewer.Name, req.CreatedByName)

	_, err = f.requests.Create(ctx, viewer, dto.CreateRequestRequest{Type: "Insumos", Text: "x", Priority: "Urgente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.requests.Create(ctx, entity.Actor{}, dto.CreateRequestRequest{Type: "Insumos", Text: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.requests.Answer(ctx, viewer, req.ID, dto.AnswerRequestRequest{Response: "ok"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.requests.Answer(ctx, operator, req.ID, dto.AnswerRequestRequest{Response: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	answered, err := f.requests.Answer(ctx, operator, req.ID, dto.AnswerRequestRequest{Response: "Llegan el lunes"})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestAnswered, answered.Status)
	assert.Equal(t, operator.Name, answered.RespondedByName)
	require.NotNil(t, answered.RespondedAt)

	_, err = f.requests.Answer(ctx, operator, req.ID, dto.AnswerRequestRequest{Response: "otra vez"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.requests.Answer(ctx, operator, "no-existe", dto.AnswerRequestRequest{Response: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pending, err := f.requests.List(ctx, dto.RequestQuery{Status: entity.RequestPending})
	require.NoError(t, err)
	assert.Empty(t, pending)
	found, err := f.requests.List(ctx, dto.RequestQuery{Text: "GUANTES"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Empleados
// ─────────────────────────────────────────────────────────────────────────────

func TestEmployeeUseCase_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.employees.Create(ctx, admin, dto.CreateEmployeeRequest{
		FirstName: "José", LastName: "Muñoz", Email: "  Jose.Munoz@APA.cl ", Password: "secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, "jose.munoz@apa.cl", out.Email)
	assert.Equal(t, "José Muñoz", out.Name)
	assert.Equal(t, entity.RoleConsulta, out.Role, "rol por defecto")
	assert.True(t, out.Active)

	stored, err := f.store.Users().GetByEmail(ctx, "jose.munoz@apa.cl")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto")))

	_, err = f.employees.Create(ctx, admin, dto.CreateEmployeeRequest{
		FirstName: "Otro", LastName: "José", Email: "jose.munoz@apa.cl", Password: "secreto",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = f.employees.Create(ctx, admin, dto.CreateEmployeeRequest{
		FirstName: "A", LastName: "B", Email: "ab@apa.cl", Password: "12345",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = f.employees.Create(ctx, operator, dto.CreateEmployeeRequest{
		FirstName: "A", LastName: "B", Email: "ab@apa.cl", Password: "123456",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEmployeeUseCase_ListAndWorkers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := false
	for _, in := range []dto.CreateEmployeeRequest{
		{FirstName: "Zoe", LastName: "Rojas", Email: "zoe@apa.cl", Password: "secreto", Role: entity.RoleOperator},
		{FirstName: "Ana", LastName: "Pérez", Email: "ana@apa.cl", Password: "secreto"},
		{FirstName: "Beto", LastName: "Soto", Email: "beto@apa.cl", Password: "secreto", Active: &inactive},
	} {
		_, err := f.employees.Create(ctx, admin, in)
		require.NoError(t, err)
	}

	list, err := f.employees.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Ana Pérez", list[0].Name)

	_, err = f.employees.List(ctx, operator)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	workers, err := f.employees.Workers(ctx, operator)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Pérez", "Zoe Rojas"}, workers)

	_, err = f.employees.Workers(ctx, viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
