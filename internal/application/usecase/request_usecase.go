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

// RequestUseCase solicitudes internas: cualquiera las crea, admin y operator las responden.
type RequestUseCase struct {
	repo repository.RequestRepository
	now  func() time.Time
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(repo repository.RequestRepository) *RequestUseCase {
	return &RequestUseCase{repo: repo, now: time.Now}
}

// Create registra una solicitud pendiente. Prioridad por defecto: Normal.
func (uc *RequestUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.Type = strings.TrimSpace(in.Type)
	in.Text = strings.TrimSpace(in.Text)
	in.Priority = strings.TrimSpace(in.Priority)
	if in.Priority == "" {
		in.Priority = entity.PriorityNormal
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	req := &entity.Request{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Text:          in.Text,
		Priority:      in.Priority,
		Status:        entity.RequestPending,
		CreatedBy:     actor.UserID,
		CreatedByName: actor.DisplayName(),
		CreatedAt:     uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	out := dto.FromRequest(req)
	return &out, nil
}

// Answer responde una solicitud pendiente. Una ya respondida devuelve domain.ErrConflict.
func (uc *RequestUseCase) Answer(ctx context.Context, actor entity.Actor, id string, in dto.AnswerRequestRequest) (*dto.RequestResponse, error) {
	if !actor.CanWrite() {
		return nil, domain.ErrForbidden
	}
	in.Response = strings.TrimSpace(in.Response)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if !current.Pending() {
		return nil, domain.ErrConflict
	}

	at := uc.now().UTC()
	current.Status = entity.RequestAnswered
	current.Response = in.Response
	current.RespondedBy = actor.UserID
	current.RespondedByName = actor.DisplayName()
	current.RespondedAt = &at
	if err := uc.repo.Answer(ctx, current); err != nil {
		return nil, err
	}
	out := dto.FromRequest(current)
	return &out, nil
}

// List por fecha de creación descendente; Text busca en tipo y texto.
func (uc *RequestUseCase) List(ctx context.Context, q dto.RequestQuery) ([]dto.RequestResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	limit := listLimit(q.Limit)
	text := strings.TrimSpace(q.Text)
	fetch := limit
	if text != "" {
		fetch = 0
	}
	list, err := uc.repo.List(ctx, q.Status, fetch)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(list))
	for _, r := range list {
		if !textnorm.Contains(text, r.Type, r.Text) {
			continue
		}
		out = append(out, dto.FromRequest(r))
	}
	return truncate(out, limit), nil
}
