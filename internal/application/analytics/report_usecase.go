package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/validation"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
	"github.com/mandu619/apa-depto-personal/pkg/textnorm"
)

// ReportUseCase arma informes de asignaciones y mermas por trabajador o por tipo de entrada.
type ReportUseCase struct {
	entries   repository.StockEntryRepository
	movements repository.MovementRepository
	renderer  ReportRenderer
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. renderer puede ser nil si no se exporta PDF.
func NewReportUseCase(entries repository.StockEntryRepository, movements repository.MovementRepository, renderer ReportRenderer) *ReportUseCase {
	return &ReportUseCase{entries: entries, movements: movements, renderer: renderer, now: time.Now}
}

// Run genera el informe.
//
// Modo worker: asignaciones cuyo trabajador contiene el filtro; las mermas no tienen trabajador
// y solo se incluyen si el filtro está vacío. Modo type: filas cuyo tipo de entrada contiene el
// filtro. El rango [from, to] es inclusivo y ambos extremos son opcionales.
func (uc *ReportUseCase) Run(ctx context.Context, q dto.ReportQuery) (*dto.ReportResponse, error) {
	q.Mode = strings.TrimSpace(q.Mode)
	if q.Mode == "" {
		q.Mode = dto.ReportByWorker
	}
	q.Filter = strings.TrimSpace(q.Filter)
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return nil, domain.NewValidationError("from", "no puede ser posterior a to")
	}

	filter := entity.MovementFilter{FromISO: q.From, ToISO: q.To}
	assignments, err := uc.movements.List(ctx, entity.MovementAssignment, filter)
	if err != nil {
		return nil, err
	}
	scrap, err := uc.movements.List(ctx, entity.MovementScrap, filter)
	if err != nil {
		return nil, err
	}
	remaining, err := uc.entries.SumAvailable(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.ReportRow, 0, len(assignments)+len(scrap))
	for _, a := range assignments {
		hay := a.Worker
		if q.Mode == dto.ReportByType {
			hay = a.EntryType
		}
		if !textnorm.Contains(q.Filter, hay) {
			continue
		}
		rows = append(rows, toRow(a))
	}
	for _, s := range scrap {
		if q.Mode == dto.ReportByWorker && q.Filter != "" {
			continue
		}
		if q.Mode == dto.ReportByType && !textnorm.Contains(q.Filter, s.EntryType) {
			continue
		}
		rows = append(rows, toRow(s))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })

	summary := dto.ReportSummary{Rows: len(rows), RemainingStock: remaining}
	for _, r := range rows {
		summary.TotalQuantity += r.Quantity
		if r.Kind == entity.MovementScrap.Label() {
			summary.ScrapQuantity += r.Quantity
		}
	}
	return &dto.ReportResponse{
		Query:       q,
		Rows:        rows,
		Summary:     summary,
		GeneratedAt: uc.now().UTC(),
	}, nil
}

// PDF genera el informe y lo renderiza.
func (uc *ReportUseCase) PDF(ctx context.Context, q dto.ReportQuery) ([]byte, error) {
	if uc.renderer == nil {
		return nil, domain.ErrNotFound
	}
	report, err := uc.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(report)
}

func toRow(m *entity.Movement) dto.ReportRow {
	reason := m.Reason
	if m.Kind == entity.MovementScrap && m.Reason == entity.ScrapReasonOther {
		reason = m.Reason + ": " + m.Detail
	}
	return dto.ReportRow{
		Date:        m.DateISO,
		Kind:        m.Kind.Label(),
		EntryType:   m.EntryType,
		Worker:      m.Worker,
		EntryID:     m.EntryID,
		Description: m.EntryDesc,
		Quantity:    m.Quantity,
		Reason:      reason,
	}
}
