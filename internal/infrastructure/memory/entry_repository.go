package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*EntryRepo)(nil)

// EntryRepo implementa StockEntryRepository. Con tx != nil opera dentro de la transacción.
type EntryRepo struct {
	store *Store
	tx    *txn
}

// Create inserta la entrada. Fuera de transacción se confirma de inmediato.
func (r *EntryRepo) Create(_ context.Context, entry *entity.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if r.tx != nil {
		e := *entry
		r.tx.entryWrites[entry.ID] = &e
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries[entry.ID] = *entry
	r.store.bump(entryKey(entry.ID))
	return nil
}

// GetByID devuelve una copia de la entrada o (nil, nil).
func (r *EntryRepo) GetByID(_ context.Context, id string) (*entity.StockEntry, error) {
	return r.get(id), nil
}

// GetForUpdate en memoria equivale a GetByID: la versión leída se valida al confirmar.
func (r *EntryRepo) GetForUpdate(_ context.Context, id string) (*entity.StockEntry, error) {
	return r.get(id), nil
}

func (r *EntryRepo) get(id string) *entity.StockEntry {
	if r.tx != nil {
		if pending, ok := r.tx.entryWrites[id]; ok {
			if pending == nil {
				return nil
			}
			e := *pending
			return &e
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.tx != nil {
		r.tx.track(entryKey(id))
	}
	e, ok := r.store.entries[id]
	if !ok {
		return nil
	}
	return &e
}

// UpdateAvailable fija quantityAvailable.
func (r *EntryRepo) UpdateAvailable(_ context.Context, id string, available int) error {
	if r.tx != nil {
		e := r.get(id)
		if e == nil {
			return domain.ErrEntryNotFound
		}
		e.QuantityAvailable = available
		r.tx.entryWrites[id] = e
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	e.QuantityAvailable = available
	r.store.entries[id] = e
	r.store.bump(entryKey(id))
	return nil
}

// Delete elimina la entrada.
func (r *EntryRepo) Delete(_ context.Context, id string) error {
	if r.tx != nil {
		r.tx.entryWrites[id] = nil
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.entries, id)
	r.store.bump(entryKey(id))
	return nil
}

// List devuelve las entradas confirmadas, más recientes primero.
func (r *EntryRepo) List(_ context.Context, filter entity.EntryFilter) ([]*entity.StockEntry, error) {
	r.store.mu.Lock()
	list := make([]*entity.StockEntry, 0, len(r.store.entries))
	for _, e := range r.store.entries {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.OnlyAvailable && e.QuantityAvailable <= 0 {
			continue
		}
		e := e
		list = append(list, &e)
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

// SumAvailable suma el disponible de todas las entradas.
func (r *EntryRepo) SumAvailable(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := 0
	for _, e := range r.store.entries {
		total += e.QuantityAvailable
	}
	return total, nil
}

// CountSince cuenta entradas con fecha >= fromISO.
func (r *EntryRepo) CountSince(_ context.Context, fromISO string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, e := range r.store.entries {
		if e.DateISO >= fromISO {
			n++
		}
	}
	return n, nil
}
