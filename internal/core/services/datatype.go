package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// DataType is the unit of work over one configuration category.
// It knows which mapper it binds to and how to enumerate live records.
// DataTypes never mutate host state.
type DataType interface {
	// Descriptor returns the category's identity and ordering weight.
	Descriptor() domain.DataTypeDescriptor

	// Handle returns the category handle.
	Handle() string

	// MapperHandle returns the handle of the mapper this category needs.
	MapperHandle() string

	// Records enumerates the live records of the category in a stable order.
	// Returns an empty slice, not an error, when the category is empty.
	Records(ctx context.Context) ([]domain.Record, error)
}

// storeDataType lists records from a driven.RecordStore.
type storeDataType[T domain.Record] struct {
	descriptor domain.DataTypeDescriptor
	store      driven.RecordStore[T]
	less       func(a, b T) bool
}

// NewStoreDataType creates a DataType backed by a record store.
// less, when non-nil, orders the records; otherwise store order is kept.
func NewStoreDataType[T domain.Record](
	descriptor domain.DataTypeDescriptor,
	store driven.RecordStore[T],
	less func(a, b T) bool,
) DataType {
	return &storeDataType[T]{
		descriptor: descriptor,
		store:      store,
		less:       less,
	}
}

func (d *storeDataType[T]) Descriptor() domain.DataTypeDescriptor { return d.descriptor }
func (d *storeDataType[T]) Handle() string                        { return d.descriptor.Handle }
func (d *storeDataType[T]) MapperHandle() string                  { return d.descriptor.MapperHandle }

// Records lists the store's records.
func (d *storeDataType[T]) Records(ctx context.Context) ([]domain.Record, error) {
	if d.store == nil {
		return []domain.Record{}, nil
	}

	records, err := d.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.descriptor.Handle, err)
	}

	if d.less != nil {
		sorted := make([]T, len(records))
		copy(sorted, records)
		sort.SliceStable(sorted, func(i, j int) bool { return d.less(sorted[i], sorted[j]) })
		records = sorted
	}

	result := make([]domain.Record, 0, len(records))
	for _, r := range records {
		result = append(result, r)
	}
	return result, nil
}

// elementIndexDataType lists the index settings of every element type.
type elementIndexDataType struct {
	descriptor domain.DataTypeDescriptor
	store      driven.ElementIndexStore
}

// NewElementIndexDataType creates the element index DataType.
func NewElementIndexDataType(descriptor domain.DataTypeDescriptor, store driven.ElementIndexStore) DataType {
	return &elementIndexDataType{descriptor: descriptor, store: store}
}

func (d *elementIndexDataType) Descriptor() domain.DataTypeDescriptor { return d.descriptor }
func (d *elementIndexDataType) Handle() string                        { return d.descriptor.Handle }
func (d *elementIndexDataType) MapperHandle() string                  { return d.descriptor.MapperHandle }

// Records returns one ElementIndex per known element type.
func (d *elementIndexDataType) Records(ctx context.Context) ([]domain.Record, error) {
	if d.store == nil {
		return []domain.Record{}, nil
	}

	types, err := d.store.ElementTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list element types: %w", err)
	}

	result := make([]domain.Record, 0, len(types))
	for _, elementType := range types {
		index, err := d.store.Settings(ctx, elementType)
		if err != nil {
			return nil, fmt.Errorf("get %s index settings: %w", elementType, err)
		}
		index.ElementType = elementType
		result = append(result, index)
	}
	return result, nil
}

// bySortOrder orders sites the way the host displays them.
func bySortOrder(a, b domain.Site) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.Handle < b.Handle
}
