package repository

import (
	"context"

	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// StockEntryRepository define el puerto de persistencia de entradas de stock.
// Dentro de un TxRunner las lecturas y escrituras quedan atadas a la transacción.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.StockEntry, error)
	// GetForUpdate lee la entrada registrando la versión leída (bloqueo de fila en PostgreSQL).
	GetForUpdate(ctx context.Context, id string) (*entity.StockEntry, error)
	UpdateAvailable(ctx context.Context, id string, available int) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha descendente.
	List(ctx context.Context, filter entity.EntryFilter) ([]*entity.StockEntry, error)
	// SumAvailable suma quantityAvailable de todas las entradas.
	SumAvailable(ctx context.Context) (int, error)
	CountSince(ctx context.Context, fromISO string) (int, error)
}
