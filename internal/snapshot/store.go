// Package snapshot guarda el estado previo de una entidad durante una única
// operación lógica (request o tarea). Cada operación recibe su propio Store
// vía contexto; un store global a nivel de proceso mezclaría snapshots de
// operaciones concurrentes sobre la misma entidad.
package snapshot

import (
	"context"
	"fmt"
	"sync"
)

// Fields valores de los campos rastreados de una entidad
type Fields map[string]interface{}

// Store snapshots pre-mutación con alcance de una operación lógica.
// Thread-safe por si la operación reparte trabajo entre goroutines.
type Store struct {
	mu    sync.Mutex
	snaps map[string]Fields
}

// NewStore crea un store vacío para una nueva operación lógica
func NewStore() *Store {
	return &Store{snaps: make(map[string]Fields)}
}

// Capture guarda el estado previo de una entidad. Para entidades recién
// creadas no se captura nada: no existe un "antes" contra el cual comparar.
func (s *Store) Capture(entityType string, entityID int, fields Fields) {
	// Copia defensiva: el caller puede seguir mutando su map
	copied := make(Fields, len(fields))
	for k, v := range fields {
		copied[k] = v
	}

	s.mu.Lock()
	s.snaps[snapKey(entityType, entityID)] = copied
	s.mu.Unlock()
}

// Take devuelve y elimina el snapshot de una entidad (consumo único).
// El consumo en la lectura evita que un snapshot viejo se reutilice en
// una operación posterior sobre el mismo id.
func (s *Store) Take(entityType string, entityID int) (Fields, bool) {
	key := snapKey(entityType, entityID)

	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.snaps[key]
	if ok {
		delete(s.snaps, key)
	}
	return fields, ok
}

func snapKey(entityType string, entityID int) string {
	return fmt.Sprintf("%s:%d", entityType, entityID)
}

// contextKey tipo privado para la clave de contexto
type contextKey struct{}

// NewContext asocia un store a un contexto de operación
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext recupera el store de la operación actual, si existe
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok
}
