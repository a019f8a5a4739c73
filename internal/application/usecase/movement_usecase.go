package usecase

import (
	"context"
	"strings"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/ledger"
	"github.com/mandu619/apa-depto-personal/internal/application/validation"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
	"github.com/mandu619/apa-depto-personal/pkg/textnorm"
)

// MovementUseCase asignaciones y mermas. Las escrituras pasan siempre por el ledger.
type MovementUseCase struct {
	ledger    StockLedger
	movements repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(ledger StockLedger, movements repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{ledger: ledger, movements: movements}
}

// Record registra una asignación o merma.
func (uc *MovementUseCase) Record(ctx context.Context, actor entity.Actor, kind entity.MovementKind, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	mov, err := uc.ledger.RecordMovement(ctx, actor, ledger.MovementInput{
		Kind:     kind,
		DateISO:  in.Date,
		EntryID:  in.EntryID,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		Worker:   in.Worker,
		Detail:   in.Detail,
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromMovement(mov)
	return &out, nil
}

// Delete borra el movimiento y devuelve su cantidad a la entrada.
func (uc *MovementUseCase) Delete(ctx context.Context, actor entity.Actor, kind entity.MovementKind, id string) error {
	return uc.ledger.DeleteMovement(ctx, actor, kind, id)
}

// List devuelve movimientos de un tipo, más recientes primero. Text busca en trabajador,
// entrada, motivo y detalle.
func (uc *MovementUseCase) List(ctx context.Context, kind entity.MovementKind, q dto.MovementQuery) ([]dto.MovementResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "debe ser uno de: assignment scrap")
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return nil, domain.NewValidationError("from", "no puede ser posterior a to")
	}
	limit := listLimit(q.Limit)
	filter := entity.MovementFilter{FromISO: q.From, ToISO: q.To, Limit: limit}
	text := strings.TrimSpace(q.Text)
	if text != "" {
		filter.Limit = 0
	}

	list, err := uc.movements.List(ctx, kind, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		if !textnorm.Contains(text, m.Worker, m.EntryLabel, m.Reason, m.Detail) {
			continue
		}
		out = append(out, dto.FromMovement(m))
	}
	return truncate(out, limit), nil
}
