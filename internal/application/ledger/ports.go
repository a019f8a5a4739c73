package ledger

import (
	"context"

	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error nada se confirma. Un choque con otra transacción al confirmar se
// reporta como domain.ErrTxConflict para que el ledger reintente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entries repository.StockEntryRepository,
		movements repository.MovementRepository,
	) error) error
}
