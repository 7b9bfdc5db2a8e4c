package services

import (
	"context"
	"sort"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// FieldMapper maps custom fields. A field limited to sites lists those
// sites by handle.
type FieldMapper struct {
	store driven.RecordStore[domain.Field]
}

var _ Mapper = (*FieldMapper)(nil)

// NewFieldMapper creates a field mapper.
func NewFieldMapper(store driven.RecordStore[domain.Field]) *FieldMapper {
	return &FieldMapper{store: store}
}

// Handle returns the mapper handle.
func (m *FieldMapper) Handle() string { return MapperFields }

// Export converts fields into {handle: {name, group, type, ...}}.
func (m *FieldMapper) Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeFields)
	fragment := exportKeyed(records, res, func(f domain.Field) map[string]any {
		entry := map[string]any{
			"name": f.Name,
			"type": f.Type,
		}
		if f.Group != "" {
			entry["group"] = f.Group
		}
		if f.Instructions != "" {
			entry["instructions"] = f.Instructions
		}
		if f.TranslationMethod != "" {
			entry["translationMethod"] = f.TranslationMethod
		}
		putSettings(entry, f.Settings)
		if len(f.SiteIDs) > 0 {
			sites := refs.resolveKeys(ctx, domain.DataTypeSites, f.SiteIDs, res, "field "+f.Handle)
			sort.Strings(sites)
			if len(sites) > 0 {
				entry["sites"] = toAnySlice(sites)
			}
		}
		return entry
	})
	return fragment, res
}

// Import reconciles fields, resolving site handles through refs.
func (m *FieldMapper) Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeFields)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	im := importer[domain.Field]{
		noun:   "field",
		store:  m.store,
		withID: domain.Field.WithID,
		decode: func(ctx context.Context, e entry, res *domain.MapperResult) (domain.Field, error) {
			f := domain.Field{
				Handle:            e.key,
				Name:              e.values.String("name"),
				Group:             e.values.String("group"),
				Type:              e.values.String("type"),
				Instructions:      e.values.String("instructions"),
				TranslationMethod: e.values.String("translationMethod"),
				Settings:          e.values.Map("settings"),
			}
			if sites := e.values.Strings("sites"); len(sites) > 0 {
				f.SiteIDs = refs.resolveIDs(ctx, domain.DataTypeSites, sites, res, "field "+e.key)
			}
			return f, nil
		},
		canonical: func(f domain.Field) domain.Field {
			if len(f.SiteIDs) > 0 {
				ids := make([]string, len(f.SiteIDs))
				copy(ids, f.SiteIDs)
				sort.Strings(ids)
				f.SiteIDs = ids
			}
			return f
		},
	}
	im.run(ctx, entries, force, res)
	return res
}
