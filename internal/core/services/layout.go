package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/born05/schematic/internal/core/domain"
)

// exportFieldLayout converts a layout into [{name, fields: [handle...]}].
func exportFieldLayout(
	ctx context.Context,
	layout domain.FieldLayout,
	refs *References,
	res *domain.MapperResult,
	owner string,
) []any {
	if len(layout) == 0 {
		return nil
	}
	tabs := make([]any, 0, len(layout))
	for _, tab := range layout {
		handles := refs.resolveKeys(ctx, domain.DataTypeFields, tab.FieldIDs, res, owner)
		fields := make([]any, len(handles))
		for i, h := range handles {
			fields[i] = h
		}
		tabs = append(tabs, map[string]any{
			"name":   tab.Name,
			"fields": fields,
		})
	}
	return tabs
}

// importFieldLayout converts the portable layout back, resolving field
// handles to IDs. A malformed tab is an entry error.
func importFieldLayout(
	ctx context.Context,
	values domain.Values,
	refs *References,
	res *domain.MapperResult,
	owner string,
) (domain.FieldLayout, error) {
	if !values.Has("fieldLayout") || values["fieldLayout"] == nil {
		return nil, nil
	}
	raw := values.Slice("fieldLayout")
	if raw == nil {
		return nil, fmt.Errorf("%w: fieldLayout: expected a sequence", domain.ErrInvalidFragment)
	}

	layout := make(domain.FieldLayout, 0, len(raw))
	for i, item := range raw {
		tab, ok := domain.AsValues(item)
		if !ok {
			return nil, fmt.Errorf("%w: fieldLayout tab %d: expected a mapping", domain.ErrInvalidFragment, i)
		}
		layout = append(layout, domain.FieldLayoutTab{
			Name:     tab.String("name"),
			FieldIDs: refs.resolveIDs(ctx, domain.DataTypeFields, tab.Strings("fields"), res, owner),
		})
	}
	return layout, nil
}

// exportSiteSettings converts per-site settings into a mapping keyed by
// site handle.
func exportSiteSettings(
	ctx context.Context,
	settings []domain.SiteSettings,
	refs *References,
	res *domain.MapperResult,
	owner string,
) map[string]any {
	if len(settings) == 0 {
		return nil
	}
	result := make(map[string]any, len(settings))
	for _, s := range settings {
		handle, ok := refs.Key(ctx, domain.DataTypeSites, s.SiteID)
		if !ok {
			res.Warn("%s: referenced %s record %q not found, omitted", owner, domain.DataTypeSites, s.SiteID)
			continue
		}
		entry := map[string]any{
			"enabled": s.Enabled,
			"hasUrls": s.HasURLs,
		}
		if s.URIFormat != "" {
			entry["uriFormat"] = s.URIFormat
		}
		if s.Template != "" {
			entry["template"] = s.Template
		}
		result[handle] = entry
	}
	return result
}

// importSiteSettings converts site settings keyed by site handle back.
// Unknown sites are warned about and dropped.
func importSiteSettings(
	ctx context.Context,
	values domain.Values,
	refs *References,
	res *domain.MapperResult,
	owner string,
) ([]domain.SiteSettings, error) {
	if !values.Has("siteSettings") || values["siteSettings"] == nil {
		return nil, nil
	}
	raw, ok := domain.AsValues(values["siteSettings"])
	if !ok {
		return nil, fmt.Errorf("%w: siteSettings: expected a mapping", domain.ErrInvalidFragment)
	}

	settings := make([]domain.SiteSettings, 0, len(raw))
	for _, handle := range domain.SortedKeys(raw) {
		id, ok := refs.ID(ctx, domain.DataTypeSites, handle)
		if !ok {
			res.Warn("%s: unresolved %s reference %q, skipped", owner, domain.DataTypeSites, handle)
			continue
		}
		s, _ := domain.AsValues(raw[handle])
		settings = append(settings, domain.SiteSettings{
			SiteID:    id,
			Enabled:   s.Bool("enabled"),
			HasURLs:   s.Bool("hasUrls"),
			URIFormat: s.String("uriFormat"),
			Template:  s.String("template"),
		})
	}
	return settings, nil
}

// sortedSiteSettings returns a copy ordered by site ID.
func sortedSiteSettings(settings []domain.SiteSettings) []domain.SiteSettings {
	if len(settings) == 0 {
		return nil
	}
	sorted := make([]domain.SiteSettings, len(settings))
	copy(sorted, settings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SiteID < sorted[j].SiteID })
	return sorted
}

// toAnySlice converts a string list for a fragment.
func toAnySlice(items []string) []any {
	if len(items) == 0 {
		return nil
	}
	result := make([]any, len(items))
	for i, item := range items {
		result[i] = item
	}
	return result
}

// putSettings adds a normalised settings map to a fragment entry.
func putSettings(entry map[string]any, settings map[string]any) {
	if n := domain.NormalizeMap(settings); n != nil {
		entry["settings"] = n
	}
}
