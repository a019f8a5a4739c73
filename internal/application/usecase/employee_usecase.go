package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/validation"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

// EmployeeUseCase administra empleados con acceso al sistema.
type EmployeeUseCase struct {
	repo       repository.UserRepository
	bcryptCost int
	now        func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.UserRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, bcryptCost: bcrypt.DefaultCost, now: time.Now}
}

// Create da de alta un empleado (solo admin). Email en minúsculas, rol por defecto consulta.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateEmployeeRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = entity.RoleConsulta
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Name:         strings.TrimSpace(in.FirstName + " " + in.LastName),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Active:       active,
		CreatedBy:    actor.UserID,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

// List devuelve todos los empleados ordenados por nombre (solo admin).
func (uc *EmployeeUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}

// Workers devuelve los nombres de empleados activos para el selector de asignaciones.
func (uc *EmployeeUseCase) Workers(ctx context.Context, actor entity.Actor) ([]string, error) {
	if !actor.CanWrite() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, u := range list {
		if u.Active && u.Name != "" {
			names = append(names, u.Name)
		}
	}
	return names, nil
}
