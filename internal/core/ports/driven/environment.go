package driven

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
)

// RecordStore provides access to the live records of one category.
type RecordStore[T domain.Record] interface {
	// List returns all records in a stable order.
	// Returns an empty slice when the category has no records.
	List(ctx context.Context) ([]T, error)

	// Save creates or updates a record.
	// Records without an ID are created and returned with a new ID.
	Save(ctx context.Context, record T) (T, error)

	// Delete removes a record by ID.
	// Returns domain.ErrNotFound if the record does not exist.
	Delete(ctx context.Context, id string) error
}

// ElementIndexStore provides access to element index settings.
// Element types are defined by code; only their settings are stored.
type ElementIndexStore interface {
	// ElementTypes returns the element types known to the installation.
	ElementTypes(ctx context.Context) ([]string, error)

	// Settings returns the index settings of an element type.
	// An element type without stored settings has no sources.
	Settings(ctx context.Context, elementType string) (domain.ElementIndex, error)

	// SaveSettings stores the index settings of an element type.
	SaveSettings(ctx context.Context, index domain.ElementIndex) error
}

// Environment bundles the record stores of one host installation.
type Environment struct {
	Plugins         RecordStore[domain.Plugin]
	Sites           RecordStore[domain.Site]
	Volumes         RecordStore[domain.Volume]
	AssetTransforms RecordStore[domain.AssetTransform]
	Fields          RecordStore[domain.Field]
	Sections        RecordStore[domain.Section]
	CategoryGroups  RecordStore[domain.CategoryGroup]
	GlobalSets      RecordStore[domain.GlobalSet]
	ElementIndexes  ElementIndexStore
}
