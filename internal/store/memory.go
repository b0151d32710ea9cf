package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// memoryState is shared between a memory store and the stores of its transactions
type memoryState struct {
	mu      sync.Mutex
	records map[schema.Kind]map[string][]byte
	values  map[string]string
}

type memoryStore struct {
	cursorStore
	state *memoryState
	// locked is set inside Transaction where the mutex is already held
	locked bool
}

// NewMemoryStore creates a store that keeps records in process memory.
// Records are copied on save and load so callers never share state with the store.
func NewMemoryStore() Store {
	return newMemoryStore(&memoryState{
		records: make(map[schema.Kind]map[string][]byte),
		values:  make(map[string]string),
	}, false)
}

func newMemoryStore(state *memoryState, locked bool) *memoryStore {
	s := &memoryStore{state: state, locked: locked}
	s.cursorStore = cursorStore{kv: s}
	return s
}

func (s *memoryStore) lock() func() {
	if s.locked {
		return func() {}
	}
	s.state.mu.Lock()
	return s.state.mu.Unlock
}

// Load retrieves a copy of the record of kind with id
func (s *memoryStore) Load(_ context.Context, kind schema.Kind, id string) (schema.Entity, error) {
	entity := schema.New(kind)
	if entity == nil {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	unlock := s.lock()
	data, ok := s.state.records[kind][id]
	unlock()
	if !ok {
		return nil, nil
	}

	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", kind, id, err)
	}
	return entity, nil
}

// Save stores a copy of the record
func (s *memoryStore) Save(_ context.Context, entity schema.Entity) error {
	if entity.EntityID() == "" {
		return fmt.Errorf("cannot save %s without id", entity.Kind())
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", entity.Kind(), entity.EntityID(), err)
	}

	unlock := s.lock()
	defer unlock()
	byID, ok := s.state.records[entity.Kind()]
	if !ok {
		byID = make(map[string][]byte)
		s.state.records[entity.Kind()] = byID
	}
	byID[entity.EntityID()] = data

	return nil
}

// Remove deletes the record of kind with id
func (s *memoryStore) Remove(_ context.Context, kind schema.Kind, id string) error {
	if schema.New(kind) == nil {
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	unlock := s.lock()
	defer unlock()
	delete(s.state.records[kind], id)

	return nil
}

// Transaction holds the store lock for the duration of fn and restores the
// previous contents if fn fails
func (s *memoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	unlock := s.lock()
	defer unlock()

	snapshot := s.state.snapshot()
	if err := fn(newMemoryStore(s.state, true)); err != nil {
		s.state.records = snapshot.records
		s.state.values = snapshot.values
		return err
	}

	return nil
}

func (s *memoryStore) getValue(_ context.Context, key string) (string, bool, error) {
	unlock := s.lock()
	defer unlock()
	v, ok := s.state.values[key]
	return v, ok, nil
}

func (s *memoryStore) setValue(_ context.Context, key string, value string) error {
	unlock := s.lock()
	defer unlock()
	s.state.values[key] = value
	return nil
}

// snapshot copies the maps. Stored byte slices are never mutated so they are shared.
func (m *memoryState) snapshot() *memoryState {
	records := make(map[schema.Kind]map[string][]byte, len(m.records))
	for kind, byID := range m.records {
		cp := make(map[string][]byte, len(byID))
		for id, data := range byID {
			cp[id] = data
		}
		records[kind] = cp
	}

	values := make(map[string]string, len(m.values))
	for k, v := range m.values {
		values[k] = v
	}

	return &memoryState{records: records, values: values}
}
