package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store, available int) string {
	t.Helper()
	e := &entity.StockEntry{DateISO: "2026-01-10", Type: "Útiles", Description: "Resmas", QuantityReceived: available, QuantityAvailable: available}
	require.NoError(t, s.Entries().Create(context.Background(), e))
	return e.ID
}

// ─────────────────────────────────────────────────────────────────────────────
// Transacciones
// ─────────────────────────────────────────────────────────────────────────────

func TestRun_CommitsBufferedWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	id := seed(t, s, 5)

	err := s.Run(ctx, func(entries repository.StockEntryRepository, movements repository.MovementRepository) error {
		e, err := entries.GetForUpdate(ctx, id)
		require.NoError(t, err)
		require.NoError(t, entries.UpdateAvailable(ctx, id, e.QuantityAvailable-2))

		// La transacción ve sus propias escrituras; fuera de ella aún no.
		inTx, _ := entries.GetByID(ctx, id)
		assert.Equal(t, 3, inTx.QuantityAvailable)
		outside, _ := s.Entries().GetByID(ctx, id)
		assert.Equal(t, 5, outside.QuantityAvailable)

		return movements.Create(ctx, &entity.Movement{Kind: entity.MovementScrap, EntryID: id, Quantity: 2, DateISO: "2026-01-11"})
	})
	require.NoError(t, err)

	e, _ := s.Entries().GetByID(ctx, id)
	assert.Equal(t, 3, e.QuantityAvailable)
	a, sc, err := s.Movements().CountByEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, sc)
}

func TestRun_ErrorDiscardsWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	id := seed(t, s, 5)

	err := s.Run(ctx, func(entries repository.StockEntryRepository, _ repository.MovementRepository) error {
		require.NoError(t, entries.UpdateAvailable(ctx, id, 0))
		return domain.ErrInsufficientStock
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	e, _ := s.Entries().GetByID(ctx, id)
	assert.Equal(t, 5, e.QuantityAvailable)
}

func TestRun_ConflictWhenReadIsStale(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	id := seed(t, s, 5)

	err := s.Run(ctx, func(entries repository.StockEntryRepository, _ repository.MovementRepository) error {
		e, err := entries.GetForUpdate(ctx, id)
		require.NoError(t, err)

		// Otra transacción confirma antes que esta.
		require.NoError(t, s.Run(ctx, func(inner repository.StockEntryRepository, _ repository.MovementRepository) error {
			return inner.UpdateAvailable(ctx, id, 1)
		}))

		return entries.UpdateAvailable(ctx, id, e.QuantityAvailable-3)
	})
	require.ErrorIs(t, err, domain.ErrTxConflict)
	e, _ := s.Entries().GetByID(ctx, id)
	assert.Equal(t, 1, e.QuantityAvailable, "el commit en conflicto no debe aplicarse")
}

func TestRun_NewDependentConflictsWithCount(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	id := seed(t, s, 5)

	err := s.Run(ctx, func(entries repository.StockEntryRepository, movements repository.MovementRepository) error {
		a, sc, err := movements.CountByEntry(ctx, id)
		require.NoError(t, err)
		require.Zero(t, a+sc)

		require.NoError(t, s.Movements().Create(ctx, &entity.Movement{Kind: entity.MovementAssignment, EntryID: id, Quantity: 1}))
		return entries.Delete(ctx, id)
	})
	require.ErrorIs(t, err, domain.ErrTxConflict)
	e, _ := s.Entries().GetByID(ctx, id)
	assert.NotNil(t, e)
}

func TestRun_CancelledContext(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(repository.StockEntryRepository, repository.MovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMovementRepo_CountByEntrySeesPendingWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	id := seed(t, s, 5)
	old := &entity.Movement{Kind: entity.MovementScrap, EntryID: id, Quantity: 1}
	require.NoError(t, s.Movements().Create(ctx, old))

	err := s.Run(ctx, func(_ repository.StockEntryRepository, movements repository.MovementRepository) error {
		require.NoError(t, movements.Delete(ctx, entity.MovementScrap, old.ID))
		require.NoError(t, movements.Create(ctx, &entity.Movement{Kind: entity.MovementAssignment, EntryID: id, Quantity: 1}))
		a, sc, err := movements.CountByEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, a)
		assert.Equal(t, 0, sc)
		return nil
	})
	require.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Listados
// ─────────────────────────────────────────────────────────────────────────────

func TestEntryRepo_ListOrderAndFilters(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	for _, e := range []*entity.StockEntry{
		{DateISO: "2026-01-01", Type: "EPP", QuantityReceived: 2, QuantityAvailable: 0},
		{DateISO: "2026-03-01", Type: "EPP", QuantityReceived: 2, QuantityAvailable: 2},
		{DateISO: "2026-02-01", Type: "Útiles", QuantityReceived: 2, QuantityAvailable: 1},
	} {
		require.NoError(t, s.Entries().Create(ctx, e))
	}

	all, err := s.Entries().List(ctx, entity.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-03-01", all[0].DateISO)
	assert.Equal(t, "2026-01-01", all[2].DateISO)

	epp, _ := s.Entries().List(ctx, entity.EntryFilter{Type: "EPP", OnlyAvailable: true})
	require.Len(t, epp, 1)
	assert.Equal(t, "2026-03-01", epp[0].DateISO)

	limited, _ := s.Entries().List(ctx, entity.EntryFilter{Limit: 2})
	assert.Len(t, limited, 2)

	total, _ := s.Entries().SumAvailable(ctx)
	assert.Equal(t, 3, total)
	n, _ := s.Entries().CountSince(ctx, "2026-02-01")
	assert.Equal(t, 2, n)
}

func TestMovementRepo_ListRange(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	for _, d := range []string{"2026-01-01", "2026-01-15", "2026-01-31", "2026-02-01"} {
		require.NoError(t, s.Movements().Create(ctx, &entity.Movement{Kind: entity.MovementAssignment, DateISO: d, EntryID: "E", Quantity: 1}))
	}
	list, err := s.Movements().List(ctx, entity.MovementAssignment, entity.MovementFilter{FromISO: "2026-01-15", ToISO: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-01-31", list[0].DateISO)
	assert.Equal(t, "2026-01-15", list[1].DateISO)

	scrap, _ := s.Movements().List(ctx, entity.MovementScrap, entity.MovementFilter{})
	assert.Empty(t, scrap)
}

func TestRequestRepo_AnswerOnlyPending(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	req := &entity.Request{Type: "Insumos", Text: "Faltan guantes", Status: entity.RequestPending, CreatedAt: time.Now()}
	require.NoError(t, s.Requests().Create(ctx, req))

	at := time.Now()
	answer := &entity.Request{ID: req.ID, Response: "Llegan el lunes", RespondedBy: "u1", RespondedAt: &at}
	require.NoError(t, s.Requests().Answer(ctx, answer))
	assert.ErrorIs(t, s.Requests().Answer(ctx, answer), domain.ErrConflict)
	assert.ErrorIs(t, s.Requests().Answer(ctx, &entity.Request{ID: "nope"}), domain.ErrNotFound)

	got, _ := s.Requests().GetByID(ctx, req.ID)
	assert.Equal(t, entity.RequestAnswered, got.Status)
	assert.Equal(t, "Llegan el lunes", got.Response)
	pending, _ := s.Requests().CountByStatus(ctx, entity.RequestPending)
	assert.Zero(t, pending)
}

func TestUserRepo_EmailIsUniqueIgnoringCase(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{Name: "Zoe", Email: "zoe@apa.cl"}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{Name: "Ana", Email: "ana@apa.cl"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{Email: "ZOE@apa.cl"}), domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "Ana@APA.cl")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ana", u.Name)

	list, _ := s.Users().List(ctx, 0)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)
}
