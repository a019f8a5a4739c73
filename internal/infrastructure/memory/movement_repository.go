package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementa MovementRepository. Con tx != nil opera dentro de la transacción.
type MovementRepo struct {
	store *Store
	tx    *txn
}

// Create inserta el movimiento.
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if r.tx != nil {
		m := *movement
		r.tx.movWrites[movementKey(m.Kind, m.ID)] = movementWrite{kind: m.Kind, id: m.ID, movement: &m}
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements[movement.Kind][movement.ID] = *movement
	r.store.bump(movementKey(movement.Kind, movement.ID))
	r.store.bump(depsKey(movement.EntryID))
	return nil
}

// GetByID devuelve una copia del movimiento o (nil, nil).
func (r *MovementRepo) GetByID(_ context.Context, kind entity.MovementKind, id string) (*entity.Movement, error) {
	key := movementKey(kind, id)
	if r.tx != nil {
		if w, ok := r.tx.movWrites[key]; ok {
			if w.movement == nil {
				return nil, nil
			}
			m := *w.movement
			return &m, nil
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.tx != nil {
		r.tx.track(key)
	}
	m, ok := r.store.movements[kind][id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// Delete elimina el movimiento.
func (r *MovementRepo) Delete(_ context.Context, kind entity.MovementKind, id string) error {
	if r.tx != nil {
		r.tx.movWrites[movementKey(kind, id)] = movementWrite{kind: kind, id: id}
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if old, ok := r.store.movements[kind][id]; ok {
		delete(r.store.movements[kind], id)
		r.store.bump(depsKey(old.EntryID))
	}
	r.store.bump(movementKey(kind, id))
	return nil
}

// CountByEntry cuenta asignaciones y mermas que referencian entryID, incluidas las
// escrituras pendientes de la transacción.
func (r *MovementRepo) CountByEntry(_ context.Context, entryID string) (int, int, error) {
	r.store.mu.Lock()
	if r.tx != nil {
		r.tx.track(depsKey(entryID))
	}
	counts := map[entity.MovementKind]int{}
	committed := map[string]bool{}
	for kind, coll := range r.store.movements {
		for id, m := range coll {
			if m.EntryID == entryID {
				counts[kind]++
				committed[movementKey(kind, id)] = true
			}
		}
	}
	r.store.mu.Unlock()

	if r.tx != nil {
		for key, w := range r.tx.movWrites {
			switch {
			case w.movement == nil && committed[key]:
				counts[w.kind]--
			case w.movement != nil && w.movement.EntryID == entryID && !committed[key]:
				counts[w.kind]++
			}
		}
	}
	return counts[entity.MovementAssignment], counts[entity.MovementScrap], nil
}

// List devuelve movimientos confirmados de un tipo, más recientes primero.
func (r *MovementRepo) List(_ context.Context, kind entity.MovementKind, filter entity.MovementFilter) ([]*entity.Movement, error) {
	r.store.mu.Lock()
	coll := r.store.movements[kind]
	list := make([]*entity.Movement, 0, len(coll))
	for _, m := range coll {
		if filter.FromISO != "" && m.DateISO < filter.FromISO {
			continue
		}
		if filter.ToISO != "" && m.DateISO > filter.ToISO {
			continue
		}
		m := m
		list = append(list, &m)
	}
	r.store.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].DateISO != list[j].DateISO {
			return list[i].DateISO > list[j].DateISO
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

// CountSince cuenta movimientos de un tipo con fecha >= fromISO.
func (r *MovementRepo) CountSince(_ context.Context, kind entity.MovementKind, fromISO string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, m := range r.store.movements[kind] {
		if m.DateISO >= fromISO {
			n++
		}
	}
	return n, nil
}
