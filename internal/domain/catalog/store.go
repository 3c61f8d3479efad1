package catalog

import (
	"sync"

	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
)

// Store tabla autoritativa del catálogo en memoria.
//
// Mantiene las filas indexadas por ID (conservando el orden de inserción como
// orden de presentación), el conjunto de IDs "dirty" con ediciones locales aún
// no sincronizadas, y un snapshot de los valores originales de cada fila dirty
// capturado en el momento en que la fila se ensucia por primera vez (para el
// revert sin releer la fuente).
//
// Invariante: todo ID en el dirty set existe en rows. La pertenencia al dirty
// set es el único marcador de "necesita sync"; no hay flags por campo.
//
// El mutex protege el acceso concurrente entre la ruta de edición (HTTP) y la
// ruta de sincronización.
type Store struct {
	mu        sync.RWMutex
	rows      map[int64]*entity.Product
	order     []int64
	dirty     map[int64]struct{}
	originals map[int64]entity.Product
}

// NewStore construye el store a partir de las filas cargadas desde la fuente.
// Asume IDs únicos (la fuente los asigna); conserva el orden recibido.
func NewStore(rows []entity.Product) *Store {
	s := &Store{
		rows:      make(map[int64]*entity.Product, len(rows)),
		order:     make([]int64, 0, len(rows)),
		dirty:     make(map[int64]struct{}),
		originals: make(map[int64]entity.Product),
	}
	for i := range rows {
		r := rows[i]
		s.rows[r.ID] = &r
		s.order = append(s.order, r.ID)
	}
	return s
}

// Get devuelve una copia de la fila. ErrNotFound si el ID no existe.
func (s *Store) Get(id int64) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	return *row, nil
}

// All devuelve copias de todas las filas en orden de presentación.
func (s *Store) All() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.rows[id])
	}
	return out
}

// Len cantidad de filas del catálogo.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// IsDirty indica si la fila tiene ediciones sin sincronizar.
func (s *Store) IsDirty(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dirty[id]
	return ok
}

// MarkDirty marca la fila como pendiente de sync. Idempotente.
// ErrNotFound si el ID no existe (el dirty set nunca referencia filas inexistentes).
func (s *Store) MarkDirty(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markDirtyLocked(id)
}

func (s *Store) markDirtyLocked(id int64) error {
	row, ok := s.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if _, already := s.dirty[id]; already {
		return nil
	}
	s.dirty[id] = struct{}{}
	// Snapshot pre-edición: se captura una sola vez, al ensuciarse la fila.
	s.originals[id] = *row
	return nil
}

// ClearDirty quita la fila del dirty set y descarta su snapshot original.
func (s *Store) ClearDirty(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dirty, id)
	delete(s.originals, id)
}

// ClearDirtyBatch limpia exactamente los IDs indicados (el lote de un intento
// de sync exitoso). IDs ensuciados después del snapshot no se tocan.
func (s *Store) ClearDirtyBatch(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.dirty, id)
		delete(s.originals, id)
	}
}

// ClearAllDirty vacía el dirty set completo.
func (s *Store) ClearAllDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = make(map[int64]struct{})
	s.originals = make(map[int64]entity.Product)
}

// DirtyIDs devuelve los IDs pendientes de sync en orden de presentación.
func (s *Store) DirtyIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.dirty))
	for _, id := range s.order {
		if _, ok := s.dirty[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// DirtyCount cantidad de filas pendientes de sync.
func (s *Store) DirtyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dirty)
}

// SnapshotDirty devuelve, bajo un único lock, los IDs dirty y una copia
// consistente de sus filas en orden de presentación. Es el snapshot que toma
// el orquestador al inicio de un intento de sync: ediciones posteriores no
// alteran el lote en vuelo.
func (s *Store) SnapshotDirty() ([]int64, []entity.Product) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.dirty))
	rows := make([]entity.Product, 0, len(s.dirty))
	for _, id := range s.order {
		if _, ok := s.dirty[id]; ok {
			ids = append(ids, id)
			rows = append(rows, *s.rows[id])
		}
	}
	return ids, rows
}

// Revert restaura los campos de una fila dirty desde su snapshot pre-edición
// y la quita del dirty set. Sobre una fila limpia es un no-op.
// ErrNotFound si el ID no existe.
func (s *Store) Revert(id int64) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	original, dirty := s.originals[id]
	if !dirty {
		return *row, nil
	}
	*row = original
	delete(s.dirty, id)
	delete(s.originals, id)
	return *row, nil
}
