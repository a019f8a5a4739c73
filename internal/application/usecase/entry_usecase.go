package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/validation"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
	"github.com/mandu619/apa-depto-personal/pkg/textnorm"
)

// EntryUseCase alta, listado y baja de entradas de stock.
type EntryUseCase struct {
	entries repository.StockEntryRepository
	ledger  StockLedger
	now     func() time.Time
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(entries repository.StockEntryRepository, ledger StockLedger) *EntryUseCase {
	return &EntryUseCase{entries: entries, ledger: ledger, now: time.Now}
}

// Create registra una entrada nueva con todo lo recibido disponible.
// Es un insert simple: ningún movimiento la referencia todavía.
func (uc *EntryUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if !actor.CanWrite() {
		return nil, domain.ErrForbidden
	}
	in.Date = strings.TrimSpace(in.Date)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	in.Reference = strings.TrimSpace(in.Reference)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	entry := &entity.StockEntry{
		ID:                uuid.New().String(),
		DateISO:           in.Date,
		Type:              in.Type,
		Description:       in.Description,
		Reference:         in.Reference,
		QuantityReceived:  in.Quantity,
		QuantityAvailable: in.Quantity,
		CreatedBy:         actor.UserID,
		CreatedByName:     actor.DisplayName(),
		CreatedAt:         uc.now().UTC(),
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	out := dto.FromEntry(entry)
	return &out, nil
}

// List devuelve entradas por fecha descendente. Text busca en tipo, descripción y referencia.
func (uc *EntryUseCase) List(ctx context.Context, q dto.EntryQuery) ([]dto.EntryResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	limit := listLimit(q.Limit)
	filter := entity.EntryFilter{Type: strings.TrimSpace(q.Type), OnlyAvailable: q.OnlyAvailable, Limit: limit}
	text := strings.TrimSpace(q.Text)
	if text != "" {
		filter.Limit = 0
	}

	list, err := uc.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		if !textnorm.Contains(text, e.Type, e.Description, e.Reference) {
			continue
		}
		out = append(out, dto.FromEntry(e))
	}
	return truncate(out, limit), nil
}

// Delete borra una entrada sin asignaciones ni mermas (ver ledger.DeleteStockEntry).
func (uc *EntryUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return uc.ledger.DeleteStockEntry(ctx, actor, id)
}
