package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

const entryColumns = `id::text, date_iso, type, description, reference,
	quantity_received, quantity_available, created_by, created_by_name, created_at`

// StockEntryRepo implementación de StockEntryRepository sobre PostgreSQL (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

func scanEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(&e.ID, &e.DateISO, &e.Type, &e.Description, &e.Reference,
		&e.QuantityReceived, &e.QuantityAvailable, &e.CreatedBy, &e.CreatedByName, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserta la entrada.
func (r *StockEntryRepo) Create(ctx context.Context, e *entity.StockEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_entries (id, date_iso, type, description, reference,
			quantity_received, quantity_available, created_by, created_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, e.ID, e.DateISO, e.Type, e.Description, e.Reference,
		e.QuantityReceived, e.QuantityAvailable, e.CreatedBy, e.CreatedByName, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada; (nil, nil) si no existe o el id no es un UUID.
func (r *StockEntryRepo) GetByID(ctx context.Context, id string) (*entity.StockEntry, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE).
func (r *StockEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockEntry, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *StockEntryRepo) get(ctx context.Context, id, lock string) (*entity.StockEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM stock_entries WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return e, nil
}

// UpdateAvailable fija quantity_available. El CHECK de la tabla rechaza valores fuera de [0, received].
func (r *StockEntryRepo) UpdateAvailable(ctx context.Context, id string, available int) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_entries SET quantity_available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("update available: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// Delete elimina la entrada.
func (r *StockEntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	return nil
}

// List devuelve entradas por fecha descendente.
func (r *StockEntryRepo) List(ctx context.Context, filter entity.EntryFilter) ([]*entity.StockEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.OnlyAvailable {
		where = append(where, "quantity_available > 0")
	}
	query := `SELECT ` + entryColumns + ` FROM stock_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date_iso DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// SumAvailable suma quantity_available de todas las entradas.
func (r *StockEntryRepo) SumAvailable(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity_available), 0)::int FROM stock_entries`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum available: %w", err)
	}
	return total, nil
}

// CountSince cuenta entradas con date_iso >= fromISO.
func (r *StockEntryRepo) CountSince(ctx context.Context, fromISO string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)::int FROM stock_entries WHERE date_iso >= $1`, fromISO).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock entries: %w", err)
	}
	return n, nil
}
