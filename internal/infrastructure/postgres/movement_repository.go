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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo guarda asignaciones en la tabla assignments y mermas en scrap.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// movementTable devuelve la tabla y las columnas propias de cada tipo
// (worker solo en assignments, detail solo en scrap).
func movementTable(kind entity.MovementKind) (table, selectCols string, err error) {
	const common = `id::text, date_iso, entry_id::text, entry_label, entry_type_snapshot,
		entry_desc_snapshot, quantity, reason, created_by, created_by_name, created_at`
	switch kind {
	case entity.MovementAssignment:
		return "assignments", common + `, worker, '' AS detail`, nil
	case entity.MovementScrap:
		return "scrap", common + `, '' AS worker, detail`, nil
	}
	return "", "", domain.NewValidationError("kind", "debe ser uno de: assignment scrap")
}

func scanMovement(row pgx.Row, kind entity.MovementKind) (*entity.Movement, error) {
	m := entity.Movement{Kind: kind}
	err := row.Scan(&m.ID, &m.DateISO, &m.EntryID, &m.EntryLabel, &m.EntryType,
		&m.EntryDesc, &m.Quantity, &m.Reason, &m.CreatedBy, &m.CreatedByName, &m.CreatedAt,
		&m.Worker, &m.Detail)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta el movimiento en la tabla de su tipo.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	var (
		query string
		extra string
	)
	switch m.Kind {
	case entity.MovementAssignment:
		query = `INSERT INTO assignments (id, date_iso, entry_id, entry_label, entry_type_snapshot,
			entry_desc_snapshot, quantity, reason, created_by, created_by_name, created_at, worker)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		extra = m.Worker
	case entity.MovementScrap:
		query = `INSERT INTO scrap (id, date_iso, entry_id, entry_label, entry_type_snapshot,
			entry_desc_snapshot, quantity, reason, created_by, created_by_name, created_at, detail)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		extra = m.Detail
	default:
		return domain.NewValidationError("kind", "debe ser uno de: assignment scrap")
	}
	_, err := r.q.Exec(ctx, query, m.ID, m.DateISO, m.EntryID, m.EntryLabel, m.EntryType,
		m.EntryDesc, m.Quantity, m.Reason, m.CreatedBy, m.CreatedByName, m.CreatedAt, extra)
	if err != nil {
		return fmt.Errorf("insert %s: %w", m.Kind, err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, kind entity.MovementKind, id string) (*entity.Movement, error) {
	table, cols, err := movementTable(kind)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+cols+` FROM `+table+` WHERE id = $1`, id), kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return m, nil
}

// Delete elimina el movimiento.
func (r *MovementRepo) Delete(ctx context.Context, kind entity.MovementKind, id string) error {
	table, _, err := movementTable(kind)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return nil
}

// CountByEntry cuenta asignaciones y mermas de la entrada en una sola consulta.
func (r *MovementRepo) CountByEntry(ctx context.Context, entryID string) (int, int, error) {
	var assignments, scrap int
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM assignments WHERE entry_id = $1)::int,
		       (SELECT COUNT(*) FROM scrap WHERE entry_id = $1)::int`, entryID,
	).Scan(&assignments, &scrap)
	if err != nil {
		return 0, 0, fmt.Errorf("count dependents: %w", err)
	}
	return assignments, scrap, nil
}

// List devuelve movimientos de un tipo por fecha descendente, con rango ISO inclusivo.
func (r *MovementRepo) List(ctx context.Context, kind entity.MovementKind, filter entity.MovementFilter) ([]*entity.Movement, error) {
	table, cols, err := movementTable(kind)
	if err != nil {
		return nil, err
	}
	var (
		where []string
		args  []any
	)
	if filter.FromISO != "" {
		args = append(args, filter.FromISO)
		where = append(where, fmt.Sprintf("date_iso >= $%d", len(args)))
	}
	if filter.ToISO != "" {
		args = append(args, filter.ToISO)
		where = append(where, fmt.Sprintf("date_iso <= $%d", len(args)))
	}
	query := `SELECT ` + cols + ` FROM ` + table
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
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountSince cuenta movimientos de un tipo con date_iso >= fromISO.
func (r *MovementRepo) CountSince(ctx context.Context, kind entity.MovementKind, fromISO string) (int, error) {
	table, _, err := movementTable(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)::int FROM `+table+` WHERE date_iso >= $1`, fromISO).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}
