package usecase

import (
	"context"

	"github.com/mandu619/apa-depto-personal/internal/application/ledger"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// StockLedger son las escrituras que tocan quantityAvailable. Lo implementa *ledger.Service.
type StockLedger interface {
	RecordMovement(ctx context.Context, actor entity.Actor, in ledger.MovementInput) (*entity.Movement, error)
	DeleteMovement(ctx context.Context, actor entity.Actor, kind entity.MovementKind, id string) error
	DeleteStockEntry(ctx context.Context, actor entity.Actor, entryID string) error
}

var _ StockLedger = (*ledger.Service)(nil)

// DefaultListLimit filas de un listado cuando no se indica limit.
const DefaultListLimit = 400

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// truncate aplica el límite después de filtrar por texto.
func truncate[T any](list []T, limit int) []T {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
