package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id::text, type, text, priority, status, response, created_by, created_by_name,
	created_at, responded_by, responded_by_name, responded_at`

// RequestRepo implementación de RequestRepository sobre PostgreSQL.
type RequestRepo struct {
	pool *pgxpool.Pool
}

// NewRequestRepository construye el adaptador de solicitudes.
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{pool: pool}
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var (
		req         entity.Request
		respondedAt *time.Time
	)
	err := row.Scan(&req.ID, &req.Type, &req.Text, &req.Priority, &req.Status, &req.Response,
		&req.CreatedBy, &req.CreatedByName, &req.CreatedAt, &req.RespondedBy, &req.RespondedByName, &respondedAt)
	if err != nil {
		return nil, err
	}
	req.RespondedAt = respondedAt
	return &req, nil
}

// Create persiste una solicitud nueva.
func (r *RequestRepo) Create(ctx context.Context, req *entity.Request) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO requests (id, type, text, priority, status, created_by, created_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, req.ID, req.Type, req.Text, req.Priority, req.Status,
		req.CreatedBy, req.CreatedByName, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	req, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// Answer responde solo si sigue pendiente: el WHERE status hace la comprobación atómica.
func (r *RequestRepo) Answer(ctx context.Context, req *entity.Request) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE requests
		SET status = $2, response = $3, responded_by = $4, responded_by_name = $5, responded_at = $6
		WHERE id = $1 AND status = $7`,
		req.ID, entity.RequestAnswered, req.Response, req.RespondedBy, req.RespondedByName, req.RespondedAt,
		entity.RequestPending,
	)
	if err != nil {
		return fmt.Errorf("answer request: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	current, err := r.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// List por fecha de creación descendente; status vacío trae todas.
func (r *RequestRepo) List(ctx context.Context, status string, limit int) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`
	args := []any{status}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// CountByStatus cuenta solicitudes en un estado.
func (r *RequestRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)::int FROM requests WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}
