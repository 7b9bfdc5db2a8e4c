package services

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// SectionMapper maps sections with their per-site settings and field layouts.
type SectionMapper struct {
	store driven.RecordStore[domain.Section]
}

var _ Mapper = (*SectionMapper)(nil)

// NewSectionMapper creates a section mapper.
func NewSectionMapper(store driven.RecordStore[domain.Section]) *SectionMapper {
	return &SectionMapper{store: store}
}

// Handle returns the mapper handle.
func (m *SectionMapper) Handle() string { return MapperSections }

// Export converts sections into {handle: {name, type, maxLevels, siteSettings, fieldLayout}}.
func (m *SectionMapper) Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeSections)
	fragment := exportKeyed(records, res, func(s domain.Section) map[string]any {
		owner := "section " + s.Handle
		entry := map[string]any{
			"name": s.Name,
			"type": s.Type,
		}
		if s.MaxLevels > 0 {
			entry["maxLevels"] = s.MaxLevels
		}
		if settings := exportSiteSettings(ctx, s.SiteSettings, refs, res, owner); settings != nil {
			entry["siteSettings"] = settings
		}
		if layout := exportFieldLayout(ctx, s.FieldLayout, refs, res, owner); layout != nil {
			entry["fieldLayout"] = layout
		}
		return entry
	})
	return fragment, res
}

// Import reconciles sections.
func (m *SectionMapper) Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeSections)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	im := importer[domain.Section]{
		noun:   "section",
		store:  m.store,
		withID: domain.Section.WithID,
		decode: func(ctx context.Context, e entry, res *domain.MapperResult) (domain.Section, error) {
			owner := "section " + e.key
			settings, err := importSiteSettings(ctx, e.values, refs, res, owner)
			if err != nil {
				return domain.Section{}, err
			}
			layout, err := importFieldLayout(ctx, e.values, refs, res, owner)
			if err != nil {
				return domain.Section{}, err
			}
			return domain.Section{
				Handle:       e.key,
				Name:         e.values.String("name"),
				Type:         e.values.String("type"),
				MaxLevels:    e.values.Int("maxLevels"),
				SiteSettings: settings,
				FieldLayout:  layout,
			}, nil
		},
		canonical: func(s domain.Section) domain.Section {
			s.SiteSettings = sortedSiteSettings(s.SiteSettings)
			return s
		},
	}
	im.run(ctx, entries, force, res)
	return res
}

// CategoryGroupMapper maps category groups.
type CategoryGroupMapper struct {
	store driven.RecordStore[domain.CategoryGroup]
}

var _ Mapper = (*CategoryGroupMapper)(nil)

// NewCategoryGroupMapper creates a category group mapper.
func NewCategoryGroupMapper(store driven.RecordStore[domain.CategoryGroup]) *CategoryGroupMapper {
	return &CategoryGroupMapper{store: store}
}

// Handle returns the mapper handle.
func (m *CategoryGroupMapper) Handle() string { return MapperCategoryGroups }

// Export converts category groups into {handle: {name, maxLevels, siteSettings, fieldLayout}}.
func (m *CategoryGroupMapper) Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeCategoryGroups)
	fragment := exportKeyed(records, res, func(g domain.CategoryGroup) map[string]any {
		owner := "category group " + g.Handle
		entry := map[string]any{
			"name": g.Name,
		}
		if g.MaxLevels > 0 {
			entry["maxLevels"] = g.MaxLevels
		}
		if settings := exportSiteSettings(ctx, g.SiteSettings, refs, res, owner); settings != nil {
			entry["siteSettings"] = settings
		}
		if layout := exportFieldLayout(ctx, g.FieldLayout, refs, res, owner); layout != nil {
			entry["fieldLayout"] = layout
		}
		return entry
	})
	return fragment, res
}

// Import reconciles category groups.
func (m *CategoryGroupMapper) Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeCategoryGroups)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	im := importer[domain.CategoryGroup]{
		noun:   "category group",
		store:  m.store,
		withID: domain.CategoryGroup.WithID,
		decode: func(ctx context.Context, e entry, res *domain.MapperResult) (domain.CategoryGroup, error) {
			owner := "category group " + e.key
			settings, err := importSiteSettings(ctx, e.values, refs, res, owner)
			if err != nil {
				return domain.CategoryGroup{}, err
			}
			layout, err := importFieldLayout(ctx, e.values, refs, res, owner)
			if err != nil {
				return domain.CategoryGroup{}, err
			}
			return domain.CategoryGroup{
				Handle:       e.key,
				Name:         e.values.String("name"),
				MaxLevels:    e.values.Int("maxLevels"),
				SiteSettings: settings,
				FieldLayout:  layout,
			}, nil
		},
		canonical: func(g domain.CategoryGroup) domain.CategoryGroup {
			g.SiteSettings = sortedSiteSettings(g.SiteSettings)
			return g
		},
	}
	im.run(ctx, entries, force, res)
	return res
}
