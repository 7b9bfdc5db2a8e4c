package services

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// PluginMapper maps installed plugins. Plugins are additive: a plugin
// missing from the document is never uninstalled. Semantic versions
// compare by precedence; any other version string, such as a branch
// name, compares as written.
type PluginMapper struct {
	store driven.RecordStore[domain.Plugin]
}

var _ Mapper = (*PluginMapper)(nil)

// NewPluginMapper creates a plugin mapper.
func NewPluginMapper(store driven.RecordStore[domain.Plugin]) *PluginMapper {
	return &PluginMapper{store: store}
}

// Handle returns the mapper handle.
func (m *PluginMapper) Handle() string { return MapperPlugins }

// Export converts plugins into {handle: {name, version, enabled, settings}}.
func (m *PluginMapper) Export(_ context.Context, records []domain.Record, _ *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypePlugins)
	fragment := exportKeyed(records, res, func(p domain.Plugin) map[string]any {
		entry := map[string]any{
			"name":    p.Name,
			"version": p.Version,
			"enabled": p.Enabled,
		}
		putSettings(entry, p.Settings)
		return entry
	})
	return fragment, res
}

// Import installs missing plugins and reconciles existing ones.
func (m *PluginMapper) Import(ctx context.Context, fragment any, force bool, _ *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypePlugins)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	live := make(map[string]domain.Plugin)
	if force {
		plugins, err := m.store.List(ctx)
		if err != nil {
			res.Fail(fmt.Errorf("list plugins: %w", err))
			return res
		}
		for _, p := range plugins {
			live[p.Handle] = p
		}
	}

	im := importer[domain.Plugin]{
		noun:   "plugin",
		store:  m.store,
		withID: domain.Plugin.WithID,
		decode: func(_ context.Context, e entry, res *domain.MapperResult) (domain.Plugin, error) {
			version := e.values.String("version")
			if v, err := semver.NewVersion(version); err == nil {
				if current, ok := live[e.key]; ok {
					if liveVersion, err := semver.NewVersion(current.Version); err == nil && liveVersion.GreaterThan(v) {
						res.Info("plugin %q: downgrading from %s to %s", e.key, liveVersion, v)
					}
				}
				version = v.String()
			}
			return domain.Plugin{
				Handle:   e.key,
				Name:     e.values.String("name"),
				Version:  version,
				Enabled:  e.values.Bool("enabled"),
				Settings: e.values.Map("settings"),
			}, nil
		},
		canonical: func(p domain.Plugin) domain.Plugin {
			if v, err := semver.NewVersion(p.Version); err == nil {
				p.Version = v.String()
			}
			return p
		},
	}
	im.run(ctx, entries, force, res)
	return res
}
