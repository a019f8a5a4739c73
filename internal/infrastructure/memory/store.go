// Package memory implementa los repositorios y el TxRunner en memoria.
//
// Las transacciones son optimistas: cada lectura registra la versión del documento leído y el
// commit falla con domain.ErrTxConflict si alguno cambió desde entonces. Las escrituras quedan en
// un buffer de la transacción hasta el commit. Sirve para desarrollo local (STORE_DRIVER=memory)
// y para pruebas.
package memory

import (
	"context"
	"sync"

	"github.com/mandu619/apa-depto-personal/internal/application/ledger"
	"github.com/mandu619/apa-depto-personal/internal/domain"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Store guarda todas las colecciones.
type Store struct {
	mu        sync.Mutex
	entries   map[string]entity.StockEntry
	movements map[entity.MovementKind]map[string]entity.Movement
	requests  map[string]entity.Request
	users     map[string]entity.User
	versions  map[string]uint64
	clock     uint64
}

// New construye un Store vacío.
func New() *Store {
	return &Store{
		entries: make(map[string]entity.StockEntry),
		movements: map[entity.MovementKind]map[string]entity.Movement{
			entity.MovementAssignment: {},
			entity.MovementScrap:      {},
		},
		requests: make(map[string]entity.Request),
		users:    make(map[string]entity.User),
		versions: make(map[string]uint64),
	}
}

func entryKey(id string) string { return "entry:" + id }

func movementKey(kind entity.MovementKind, id string) string { return string(kind) + ":" + id }

// depsKey versiona el conjunto de movimientos que referencian una entrada.
func depsKey(entryID string) string { return "deps:" + entryID }

// bump avanza la versión de key. Requiere s.mu.
func (s *Store) bump(key string) {
	s.clock++
	s.versions[key] = s.clock
}

// Entries devuelve el repositorio de entradas fuera de transacción.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{store: s} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{store: s} }

// Requests devuelve el repositorio de solicitudes.
func (s *Store) Requests() *RequestRepo { return &RequestRepo{store: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Run ejecuta fn en una transacción optimista.
func (s *Store) Run(ctx context.Context, fn func(
	entries repository.StockEntryRepository,
	movements repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txn{
		store:       s,
		reads:       make(map[string]uint64),
		entryWrites: make(map[string]*entity.StockEntry),
		movWrites:   make(map[string]movementWrite),
	}
	if err := fn(&EntryRepo{store: s, tx: tx}, &MovementRepo{store: s, tx: tx}); err != nil {
		return err
	}
	return s.commit(tx)
}

type movementWrite struct {
	kind     entity.MovementKind
	id       string
	movement *entity.Movement // nil = borrar
}

type txn struct {
	store       *Store
	reads       map[string]uint64
	entryWrites map[string]*entity.StockEntry // nil = borrar
	movWrites   map[string]movementWrite
}

// track registra la versión vista de key la primera vez que se lee. Requiere s.mu.
func (t *txn) track(key string) {
	if _, seen := t.reads[key]; !seen {
		t.reads[key] = t.store.versions[key]
	}
}

func (s *Store) commit(tx *txn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, seen := range tx.reads {
		if s.versions[key] != seen {
			return domain.ErrTxConflict
		}
	}
	for id, e := range tx.entryWrites {
		if e == nil {
			delete(s.entries, id)
		} else {
			s.entries[id] = *e
		}
		s.bump(entryKey(id))
	}
	for _, w := range tx.movWrites {
		coll := s.movements[w.kind]
		if w.movement == nil {
			if old, ok := coll[w.id]; ok {
				delete(coll, w.id)
				s.bump(depsKey(old.EntryID))
			}
		} else {
			coll[w.id] = *w.movement
			s.bump(depsKey(w.movement.EntryID))
		}
		s.bump(movementKey(w.kind, w.id))
	}
	return nil
}
