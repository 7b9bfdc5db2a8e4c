package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// sourceKinds maps element index source key prefixes to the data type
// whose records they reference.
var sourceKinds = map[string]string{
	"section": domain.DataTypeSections,
	"group":   domain.DataTypeCategoryGroups,
	"volume":  domain.DataTypeVolumes,
}

// ElementIndexMapper maps element index settings. Source keys that
// reference records are exported with handles in place of IDs.
type ElementIndexMapper struct {
	store driven.ElementIndexStore
}

var _ Mapper = (*ElementIndexMapper)(nil)

// NewElementIndexMapper creates an element index mapper.
func NewElementIndexMapper(store driven.ElementIndexStore) *ElementIndexMapper {
	return &ElementIndexMapper{store: store}
}

// Handle returns the mapper handle.
func (m *ElementIndexMapper) Handle() string { return MapperElementIndexes }

// Export converts settings into {elementType: {sources: [{key, heading, tableAttributes}]}}.
func (m *ElementIndexMapper) Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeElementIndexes)
	fragment := exportKeyed(records, res, func(idx domain.ElementIndex) map[string]any {
		sources := make([]any, 0, len(idx.Sources))
		for _, src := range idx.Sources {
			key, ok := translateSourceKey(src.Key, func(dataType, id string) (string, bool) {
				return refs.Key(ctx, dataType, id)
			})
			if !ok {
				res.Warn("element index %s: source %q references a missing record, omitted", idx.ElementType, src.Key)
				continue
			}
			source := map[string]any{"key": key}
			if src.Heading != "" {
				source["heading"] = src.Heading
			}
			if len(src.TableAttributes) > 0 {
				source["tableAttributes"] = toAnySlice(src.TableAttributes)
			}
			sources = append(sources, source)
		}
		return map[string]any{"sources": sources}
	})
	return fragment, res
}

// Import applies settings for element types known to the host.
// Settings for unknown element types are skipped with a warning.
func (m *ElementIndexMapper) Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeElementIndexes)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	types, err := m.store.ElementTypes(ctx)
	if err != nil {
		res.Fail(fmt.Errorf("list element types: %w", err))
		return res
	}

	im := importer[domain.ElementIndex]{
		noun:   "element index",
		store:  &elementIndexRecords{store: m.store, types: types},
		withID: func(idx domain.ElementIndex, _ string) domain.ElementIndex { return idx },
		decode: func(ctx context.Context, e entry, res *domain.MapperResult) (domain.ElementIndex, error) {
			if !slices.Contains(types, e.key) {
				res.Warn("unknown element type %q, skipped", e.key)
				return domain.ElementIndex{}, errSkipEntry
			}

			idx := domain.ElementIndex{ElementType: e.key}
			for i, item := range e.values.Slice("sources") {
				src, ok := domain.AsValues(item)
				if !ok {
					return domain.ElementIndex{}, fmt.Errorf("%w: source %d: expected a mapping", domain.ErrInvalidFragment, i)
				}
				key, ok := translateSourceKey(src.String("key"), func(dataType, handle string) (string, bool) {
					return refs.ID(ctx, dataType, handle)
				})
				if !ok {
					res.Warn("element index %s: unresolved source %q, skipped", e.key, src.String("key"))
					continue
				}
				idx.Sources = append(idx.Sources, domain.ElementIndexSource{
					Key:             key,
					Heading:         src.String("heading"),
					TableAttributes: src.Strings("tableAttributes"),
				})
			}

			// Nothing configured on either side.
			if len(idx.Sources) == 0 {
				current, err := m.store.Settings(ctx, e.key)
				if err == nil && len(current.Sources) == 0 {
					return idx, errSkipEntry
				}
			}
			return idx, nil
		},
	}
	im.run(ctx, entries, force, res)
	return res
}

// translateSourceKey rewrites the reference part of a "<kind>:<ref>" key.
// Keys without a known kind pass through unchanged.
func translateSourceKey(key string, lookup func(dataType, ref string) (string, bool)) (string, bool) {
	kind, ref, found := strings.Cut(key, ":")
	if !found {
		return key, true
	}
	dataType, known := sourceKinds[kind]
	if !known {
		return key, true
	}
	translated, ok := lookup(dataType, ref)
	if !ok {
		return "", false
	}
	return kind + ":" + translated, true
}

// elementIndexRecords presents an ElementIndexStore as a record store.
// Element types without sources count as absent.
type elementIndexRecords struct {
	store driven.ElementIndexStore
	types []string
}

func (s *elementIndexRecords) List(ctx context.Context) ([]domain.ElementIndex, error) {
	var result []domain.ElementIndex
	for _, t := range s.types {
		idx, err := s.store.Settings(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("settings %s: %w", t, err)
		}
		if len(idx.Sources) > 0 {
			result = append(result, idx)
		}
	}
	return result, nil
}

func (s *elementIndexRecords) Save(ctx context.Context, idx domain.ElementIndex) (domain.ElementIndex, error) {
	if err := s.store.SaveSettings(ctx, idx); err != nil {
		return domain.ElementIndex{}, err
	}
	return idx, nil
}

func (s *elementIndexRecords) Delete(_ context.Context, elementType string) error {
	return fmt.Errorf("element index %s: %w", elementType, domain.ErrInvalidInput)
}
