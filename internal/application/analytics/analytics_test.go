package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/ledger"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/memory"
)

var operator = entity.Actor{UserID: "u-op", Name: "Olga", Role: entity.RoleOperator}

type seeded struct {
	store *memory.Store
	epp   string
	tools string
}

// seedMovements crea dos entradas y movimientos en abril y mayo de 2026.
func seedMovements(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	svc := ledger.NewService(store, ledger.Config{}, zerolog.Nop())

	epp := &entity.StockEntry{DateISO: "2026-04-01", Type: "EPP", Description: "Guantes", QuantityReceived: 20, QuantityAvailable: 20}
	tools := &entity.StockEntry{DateISO: "2026-05-10", Type: "Herramientas", Description: "Martillo", QuantityReceived: 5, QuantityAvailable: 5}
	require.NoError(t, store.Entries().Create(ctx, epp))
	require.NoError(t, store.Entries().Create(ctx, tools))

	record := func(in ledger.MovementInput) {
		_, err := svc.RecordMovement(ctx, operator, in)
		require.NoError(t, err)
	}
	record(ledger.MovementInput{Kind: entity.MovementAssignment, DateISO: "2026-04-02", EntryID: epp.ID, Quantity: 3, Reason: "Ingreso", Worker: "José Muñoz"})
	record(ledger.MovementInput{Kind: entity.MovementAssignment, DateISO: "2026-05-12", EntryID: tools.ID, Quantity: 1, Reason: "Reposición", Worker: "Ana Pérez"})
	record(ledger.MovementInput{Kind: entity.MovementScrap, DateISO: "2026-05-15", EntryID: epp.ID, Quantity: 2, Reason: entity.ScrapReasonOther, Detail: "mojados"})
	record(ledger.MovementInput{Kind: entity.MovementScrap, DateISO: "2026-04-20", EntryID: tools.ID, Quantity: 1, Reason: "Rotura"})
	return seeded{store: store, epp: epp.ID, tools: tools.ID}
}

func newReport(s seeded, r ReportRenderer) *ReportUseCase {
	return NewReportUseCase(s.store.Entries(), s.store.Movements(), r)
}

// ─────────────────────────────────────────────────────────────────────────────
// Informes
// ─────────────────────────────────────────────────────────────────────────────

func TestReport_AllRowsSortedWithSummary(t *testing.T) {
	s := seedMovements(t)
	report, err := newReport(s, nil).Run(context.Background(), dto.ReportQuery{})
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)
	dates := []string{report.Rows[0].Date, report.Rows[1].Date, report.Rows[2].Date, report.Rows[3].Date}
	assert.Equal(t, []string{"2026-05-15", "2026-05-12", "2026-04-20", "2026-04-02"}, dates)

	assert.Equal(t, "Merma", report.Rows[0].Kind)
	assert.Equal(t, "Otro: mojados", report.Rows[0].Reason)
	assert.Equal(t, "Rotura", report.Rows[2].Reason)
	assert.Equal(t, "Asignación", report.Rows[1].Kind)
	assert.Equal(t, s.tools, report.Rows[1].EntryID)

	assert.Equal(t, dto.ReportSummary{Rows: 4, TotalQuantity: 7, ScrapQuantity: 3, RemainingStock: 18}, report.Summary)
	assert.Equal(t, dto.ReportByWorker, report.Query.Mode)
}

func TestReport_WorkerFilterDropsScrap(t *testing.T) {
	s := seedMovements(t)
	report, err := newReport(s, nil).Run(context.Background(), dto.ReportQuery{Mode: "worker", Filter: "jose"})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "José Muñoz", report.Rows[0].Worker)
	assert.Zero(t, report.Summary.ScrapQuantity)
}

func TestReport_TypeFilterAndRange(t *testing.T) {
	s := seedMovements(t)
	uc := newReport(s, nil)

	report, err := uc.Run(context.Background(), dto.ReportQuery{Mode: "type", Filter: "epp"})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	for _, r := range report.Rows {
		assert.Equal(t, "EPP", r.EntryType)
	}

	report, err = uc.Run(context.Background(), dto.ReportQuery{Mode: "type", From: "2026-05-01", To: "2026-05-15"})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2, "los extremos del rango son inclusivos")

	_, err = uc.Run(context.Background(), dto.ReportQuery{From: "2026-05-15", To: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Run(context.Background(), dto.ReportQuery{Mode: "mes"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type stubRenderer struct {
	got *dto.ReportResponse
	err error
}

func (r *stubRenderer) Render(report *dto.ReportResponse) ([]byte, error) {
	r.got = report
	return []byte("%PDF"), r.err
}

func TestReport_PDF(t *testing.T) {
	s := seedMovements(t)
	renderer := &stubRenderer{}
	out, err := newReport(s, renderer).PDF(context.Background(), dto.ReportQuery{Mode: "type"})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	require.NotNil(t, renderer.got)
	assert.Len(t, renderer.got.Rows, 4)

	renderer.err = errors.New("sin fuente")
	_, err = newReport(s, renderer).PDF(context.Background(), dto.ReportQuery{})
	assert.Error(t, err)

	_, err = newReport(s, nil).PDF(context.Background(), dto.ReportQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []dto.ReportRow{
		{Date: "2026-05-15", Kind: "Merma", EntryType: "EPP", EntryID: "E1", Description: "Guantes, talla M", Quantity: 2, Reason: `Otro: "mojados"`},
	}
	require.NoError(t, WriteCSV(&buf, rows))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeaders, records[0])
	assert.Equal(t, []string{"2026-05-15", "Merma", "EPP", "", "E1", "Guantes, talla M", "2", `Otro: "mojados"`}, records[1])
}

// ─────────────────────────────────────────────────────────────────────────────
// Dashboard
// ─────────────────────────────────────────────────────────────────────────────

func TestDashboard_LastThirtyDays(t *testing.T) {
	s := seedMovements(t)
	ctx := context.Background()
	require.NoError(t, s.store.Requests().Create(ctx, &entity.Request{Type: "x", Text: "y", Status: entity.RequestPending}))
	require.NoError(t, s.store.Requests().Create(ctx, &entity.Request{Type: "x", Text: "z", Status: entity.RequestAnswered}))

	uc := NewDashboardUseCase(s.store.Entries(), s.store.Movements(), s.store.Requests())
	uc.now = func() time.Time { return time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC) }

	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", out.Since)
	assert.Equal(t, 1, out.Entries)
	assert.Equal(t, 1, out.Assignments)
	assert.Equal(t, 1, out.Scrap)
	assert.Equal(t, 1, out.PendingRequests)
	require.Len(t, out.LatestEntries, 2)
	assert.Equal(t, "Martillo", out.LatestEntries[0].Description)
	require.Len(t, out.LatestAssignments, 2)
	assert.Equal(t, "Ana Pérez", out.LatestAssignments[0].Worker)
}
