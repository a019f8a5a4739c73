package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementa RequestRepository en memoria.
type RequestRepo struct {
	store *Store
}

func (r *RequestRepo) Create(_ context.Context, req *entity.Request) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.requests[req.ID] = *req
	return nil
}

func (r *RequestRepo) GetByID(_ context.Context, id string) (*entity.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

// Answer guarda la respuesta solo si la solicitud sigue pendiente.
func (r *RequestRepo) Answer(_ context.Context, req *entity.Request) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !current.Pending() {
		return domain.ErrConflict
	}
	current.Status = entity.RequestAnswered
	current.Response = req.Response
	current.RespondedBy = req.RespondedBy
	current.RespondedByName = req.RespondedByName
	current.RespondedAt = req.RespondedAt
	r.store.requests[req.ID] = current
	return nil
}

func (r *RequestRepo) List(_ context.Context, status string, limit int) ([]*entity.Request, error) {
	r.store.mu.Lock()
	list := make([]*entity.Request, 0, len(r.store.requests))
	for _, req := range r.store.requests {
		if status != "" && req.Status != status {
			continue
		}
		req := req
		list = append(list, &req)
	}
	r.store.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *RequestRepo) CountByStatus(_ context.Context, status string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, req := range r.store.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}
