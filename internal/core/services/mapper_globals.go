package services

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// GlobalSetMapper maps global sets. Forced imports delete global sets
// missing from the document.
type GlobalSetMapper struct {
	store driven.RecordStore[domain.GlobalSet]
}

var _ Mapper = (*GlobalSetMapper)(nil)

// NewGlobalSetMapper creates a global set mapper.
func NewGlobalSetMapper(store driven.RecordStore[domain.GlobalSet]) *GlobalSetMapper {
	return &GlobalSetMapper{store: store}
}

// Handle returns the mapper handle.
func (m *GlobalSetMapper) Handle() string { return MapperGlobalSets }

// Export converts global sets into {handle: {name, fieldLayout}}.
func (m *GlobalSetMapper) Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeGlobalSets)
	fragment := exportKeyed(records, res, func(g domain.GlobalSet) map[string]any {
		entry := map[string]any{
			"name": g.Name,
		}
		if layout := exportFieldLayout(ctx, g.FieldLayout, refs, res, "global set "+g.Handle); layout != nil {
			entry["fieldLayout"] = layout
		}
		return entry
	})
	return fragment, res
}

// Import reconciles global sets.
func (m *GlobalSetMapper) Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeGlobalSets)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	im := importer[domain.GlobalSet]{
		noun:   "global set",
		store:  m.store,
		withID: domain.GlobalSet.WithID,
		decode: func(ctx context.Context, e entry, res *domain.MapperResult) (domain.GlobalSet, error) {
			layout, err := importFieldLayout(ctx, e.values, refs, res, "global set "+e.key)
			if err != nil {
				return domain.GlobalSet{}, err
			}
			return domain.GlobalSet{
				Handle:      e.key,
				Name:        e.values.String("name"),
				FieldLayout: layout,
			}, nil
		},
		prunable: func(domain.GlobalSet) bool { return true },
	}
	im.run(ctx, entries, force, res)
	return res
}
