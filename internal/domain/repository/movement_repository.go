package repository

import (
	"context"

	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia de asignaciones y mermas.
// Cada tipo vive en su propia colección/tabla; kind la selecciona.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, kind entity.MovementKind, id string) (*entity.Movement, error)
	Delete(ctx context.Context, kind entity.MovementKind, id string) error
	// CountByEntry cuenta dependientes de una entrada (sin caché).
	CountByEntry(ctx context.Context, entryID string) (assignments, scrap int, err error)
	// List ordena por fecha descendente.
	List(ctx context.Context, kind entity.MovementKind, filter entity.MovementFilter) ([]*entity.Movement, error)
	CountSince(ctx context.Context, kind entity.MovementKind, fromISO string) (int, error)
}
