package repository

import (
	"context"

	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// RequestRepository define el puerto de persistencia de solicitudes internas.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	// Answer marca la solicitud como respondida solo si sigue pendiente;
	// devuelve domain.ErrConflict si ya fue respondida.
	Answer(ctx context.Context, req *entity.Request) error
	// List ordena por createdAt descendente.
	List(ctx context.Context, status string, limit int) ([]*entity.Request, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
