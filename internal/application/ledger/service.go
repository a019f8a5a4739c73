// Package ledger mantiene el contador quantityAvailable de cada entrada de stock consistente
// con sus asignaciones y mermas:
//
//	quantityAvailable + Σ movimientos.quantity == quantityReceived
//
// Toda lectura y escritura del contador ocurre dentro de una transacción del TxRunner.
// El servicio no guarda caché.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/validation"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

// DefaultMaxAttempts es el número de intentos ante conflictos de concurrencia.
const DefaultMaxAttempts = 5

// Config parámetros del servicio.
type Config struct {
	MaxAttempts int
}

// Service es el Stock Ledger Service.
type Service struct {
	txRunner    TxRunner
	maxAttempts int
	log         zerolog.Logger
	now         func() time.Time
}

// NewService construye el servicio. MaxAttempts <= 0 usa DefaultMaxAttempts.
func NewService(txRunner TxRunner, cfg Config, log zerolog.Logger) *Service {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	return &Service{
		txRunner:    txRunner,
		maxAttempts: attempts,
		log:         log.With().Str("component", "ledger").Logger(),
		now:         time.Now,
	}
}

// MovementInput datos para registrar una asignación o una merma.
type MovementInput struct {
	Kind     entity.MovementKind `json:"kind" validate:"required,oneof=assignment scrap"`
	DateISO  string              `json:"date" validate:"required,isodate"`
	EntryID  string              `json:"entry_id" validate:"required"`
	Quantity int                 `json:"quantity" validate:"gt=0,lte=2147483647"`
	Reason   string              `json:"reason" validate:"required"`
	Worker   string              `json:"worker" validate:"required_if=Kind assignment"`
	Detail   string              `json:"detail" validate:"required_if=Kind scrap Reason Otro"`
}

func (in *MovementInput) normalize() {
	in.DateISO = strings.TrimSpace(in.DateISO)
	in.EntryID = strings.TrimSpace(in.EntryID)
	in.Reason = strings.TrimSpace(in.Reason)
	in.Worker = strings.TrimSpace(in.Worker)
	in.Detail = strings.TrimSpace(in.Detail)
	if in.Kind == entity.MovementAssignment {
		in.Detail = ""
	}
	if in.Kind == entity.MovementScrap {
		in.Worker = ""
		if in.Reason != entity.ScrapReasonOther {
			in.Detail = ""
		}
	}
}

// RecordMovement descuenta quantity de la entrada y crea el movimiento en una sola transacción.
//
// Errores: domain.ErrForbidden, *domain.ValidationError, domain.ErrEntryNotFound,
// *domain.InsufficientStockError, domain.ErrTransactionAborted.
func (s *Service) RecordMovement(ctx context.Context, actor entity.Actor, in MovementInput) (*entity.Movement, error) {
	if !actor.CanWrite() {
		return nil, domain.ErrForbidden
	}
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	movementID := uuid.New().String()
	var created *entity.Movement

	err := s.run(ctx, "record "+string(in.Kind), func(
		entries repository.StockEntryRepository,
		movements repository.MovementRepository,
	) error {
		entry, err := entries.GetForUpdate(ctx, in.EntryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrEntryNotFound
		}
		if in.Quantity > entry.QuantityAvailable {
			return &domain.InsufficientStockError{
				EntryID:   entry.ID,
				Available: entry.QuantityAvailable,
				Requested: in.Quantity,
			}
		}
		if err := entries.UpdateAvailable(ctx, entry.ID, entry.QuantityAvailable-in.Quantity); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:            movementID,
			Kind:          in.Kind,
			DateISO:       in.DateISO,
			EntryID:       entry.ID,
			EntryLabel:    entry.Label(),
			EntryType:     entry.Type,
			EntryDesc:     entry.Description,
			Quantity:      in.Quantity,
			Reason:        in.Reason,
			Worker:        in.Worker,
			Detail:        in.Detail,
			CreatedBy:     actor.UserID,
			CreatedByName: actor.DisplayName(),
			CreatedAt:     s.now().UTC(),
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteMovement borra el movimiento y devuelve su cantidad a la entrada (transacción compensatoria).
// Si la entrada ya no existe solo se borra el movimiento.
func (s *Service) DeleteMovement(ctx context.Context, actor entity.Actor, kind entity.MovementKind, id string) error {
	if !actor.CanWrite() {
		return domain.ErrForbidden
	}
	if !kind.Valid() {
		return domain.NewValidationError("kind", "debe ser uno de: assignment scrap")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("id", "es obligatorio")
	}

	return s.run(ctx, "delete "+string(kind), func(
		entries repository.StockEntryRepository,
		movements repository.MovementRepository,
	) error {
		mov, err := movements.GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovementNotFound
		}
		entry, err := entries.GetForUpdate(ctx, mov.EntryID)
		if err != nil {
			return err
		}
		if entry != nil {
			restored := entry.QuantityAvailable + mov.Quantity
			if restored > entry.QuantityReceived {
				return fmt.Errorf("%w: disponible %d superaría lo recibido %d en la entrada %s",
					domain.ErrConflict, restored, entry.QuantityReceived, entry.ID)
			}
			if err := entries.UpdateAvailable(ctx, entry.ID, restored); err != nil {
				return err
			}
		}
		return movements.Delete(ctx, kind, id)
	})
}

// DeleteStockEntry borra una entrada sin movimientos. Los dependientes se cuentan dentro de la
// misma transacción que borra, con la fila de la entrada ya leída para update.
func (s *Service) DeleteStockEntry(ctx context.Context, actor entity.Actor, entryID string) error {
	if !actor.CanWrite() {
		return domain.ErrForbidden
	}
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return domain.NewValidationError("id", "es obligatorio")
	}

	return s.run(ctx, "delete entry", func(
		entries repository.StockEntryRepository,
		movements repository.MovementRepository,
	) error {
		entry, err := entries.GetForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrEntryNotFound
		}
		assignments, scrap, err := movements.CountByEntry(ctx, entryID)
		if err != nil {
			return err
		}
		if assignments+scrap > 0 {
			return &domain.DependentsError{EntryID: entryID, Assignments: assignments, Scrap: scrap}
		}
		return entries.Delete(ctx, entryID)
	})
}

// run ejecuta fn en una transacción y la repite mientras el TxRunner reporte conflicto,
// hasta maxAttempts. Cualquier otro error se devuelve sin reintentar.
func (s *Service) run(ctx context.Context, op string, fn func(repository.StockEntryRepository, repository.MovementRepository) error) error {
	for attempt := 1; ; attempt++ {
		err := s.txRunner.Run(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrTxConflict) {
			return err
		}
		if attempt >= s.maxAttempts {
			s.log.Error().Err(err).Str("op", op).Int("attempts", attempt).Msg("transacción abortada")
			return fmt.Errorf("%w (%s, %d intentos)", domain.ErrTransactionAborted, op, attempt)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.log.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("conflicto de concurrencia, reintentando")
	}
}
