package repository

import (
	"context"

	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para empleados con acceso (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List ordena por nombre.
	List(ctx context.Context, limit int) ([]*entity.User, error)
}
