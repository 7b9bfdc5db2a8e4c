package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore[domain.Site] = (*RecordStore[domain.Site])(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are listed in insertion order.
type RecordStore[T domain.Record] struct {
	mu      sync.RWMutex
	order   []string
	records map[string]T
	withID  func(T, string) T
}

// NewRecordStore creates a new in-memory record store.
// withID returns a copy of a record carrying the given ID.
func NewRecordStore[T domain.Record](withID func(T, string) T, records ...T) *RecordStore[T] {
	s := &RecordStore[T]{
		records: make(map[string]T),
		withID:  withID,
	}
	for _, r := range records {
		_, _ = s.Save(context.Background(), r)
	}
	return s
}

// List returns all records in insertion order.
func (s *RecordStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.records[id])
	}
	return result, nil
}

// Save creates or updates a record. Records without an ID get a new one.
func (s *RecordStore[T]) Save(_ context.Context, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.RecordID()
	if id == "" {
		id = uuid.New().String()
		record = s.withID(record, id)
	}
	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = record
	return record, nil
}

// Delete removes a record by ID.
func (s *RecordStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; !exists {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored records.
func (s *RecordStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Ensure ElementIndexStore implements the interface.
var _ driven.ElementIndexStore = (*ElementIndexStore)(nil)

// ElementIndexStore is an in-memory implementation of driven.ElementIndexStore.
type ElementIndexStore struct {
	mu       sync.RWMutex
	types    []string
	settings map[string]domain.ElementIndex
}

// NewElementIndexStore creates a store that knows the given element types.
func NewElementIndexStore(elementTypes ...string) *ElementIndexStore {
	return &ElementIndexStore{
		types:    elementTypes,
		settings: make(map[string]domain.ElementIndex),
	}
}

// ElementTypes returns the known element types.
func (s *ElementIndexStore) ElementTypes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.types))
	copy(result, s.types)
	return result, nil
}

// Settings returns the index settings of an element type.
func (s *ElementIndexStore) Settings(_ context.Context, elementType string) (domain.ElementIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.known(elementType) {
		return domain.ElementIndex{}, domain.ErrNotFound
	}
	idx, ok := s.settings[elementType]
	if !ok {
		return domain.ElementIndex{ElementType: elementType}, nil
	}
	return idx, nil
}

// SaveSettings stores the index settings of a known element type.
func (s *ElementIndexStore) SaveSettings(_ context.Context, index domain.ElementIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known(index.ElementType) {
		return domain.ErrNotFound
	}
	s.settings[index.ElementType] = index
	return nil
}

func (s *ElementIndexStore) known(elementType string) bool {
	for _, t := range s.types {
		if t == elementType {
			return true
		}
	}
	return false
}

// Environment bundles in-memory stores for every category.
type Environment struct {
	Plugins         *RecordStore[domain.Plugin]
	Sites           *RecordStore[domain.Site]
	Volumes         *RecordStore[domain.Volume]
	AssetTransforms *RecordStore[domain.AssetTransform]
	Fields          *RecordStore[domain.Field]
	Sections        *RecordStore[domain.Section]
	CategoryGroups  *RecordStore[domain.CategoryGroup]
	GlobalSets      *RecordStore[domain.GlobalSet]
	ElementIndexes  *ElementIndexStore
}

// NewEnvironment creates an empty in-memory environment.
func NewEnvironment(elementTypes ...string) *Environment {
	return &Environment{
		Plugins:         NewRecordStore(domain.Plugin.WithID),
		Sites:           NewRecordStore(domain.Site.WithID),
		Volumes:         NewRecordStore(domain.Volume.WithID),
		AssetTransforms: NewRecordStore(domain.AssetTransform.WithID),
		Fields:          NewRecordStore(domain.Field.WithID),
		Sections:        NewRecordStore(domain.Section.WithID),
		CategoryGroups:  NewRecordStore(domain.CategoryGroup.WithID),
		GlobalSets:      NewRecordStore(domain.GlobalSet.WithID),
		ElementIndexes:  NewElementIndexStore(elementTypes...),
	}
}

// Driven returns the environment as driven ports.
func (e *Environment) Driven() *driven.Environment {
	return &driven.Environment{
		Plugins:         e.Plugins,
		Sites:           e.Sites,
		Volumes:         e.Volumes,
		AssetTransforms: e.AssetTransforms,
		Fields:          e.Fields,
		Sections:        e.Sections,
		CategoryGroups:  e.CategoryGroups,
		GlobalSets:      e.GlobalSets,
		ElementIndexes:  e.ElementIndexes,
	}
}
