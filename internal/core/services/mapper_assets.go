package services

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// VolumeMapper maps asset volumes and their field layouts.
type VolumeMapper struct {
	store driven.RecordStore[domain.Volume]
}

var _ Mapper = (*VolumeMapper)(nil)

// NewVolumeMapper creates a volume mapper.
func NewVolumeMapper(store driven.RecordStore[domain.Volume]) *VolumeMapper {
	return &VolumeMapper{store: store}
}

// Handle returns the mapper handle.
func (m *VolumeMapper) Handle() string { return MapperVolumes }

// Export converts volumes into {handle: {name, type, hasUrls, url, settings, fieldLayout}}.
func (m *VolumeMapper) Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeVolumes)
	fragment := exportKeyed(records, res, func(v domain.Volume) map[string]any {
		entry := map[string]any{
			"name":    v.Name,
			"type":    v.Type,
			"hasUrls": v.HasURLs,
		}
		if v.URL != "" {
			entry["url"] = v.URL
		}
		putSettings(entry, v.Settings)
		if layout := exportFieldLayout(ctx, v.FieldLayout, refs, res, "volume "+v.Handle); layout != nil {
			entry["fieldLayout"] = layout
		}
		return entry
	})
	return fragment, res
}

// Import reconciles volumes.
func (m *VolumeMapper) Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeVolumes)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	im := importer[domain.Volume]{
		noun:   "volume",
		store:  m.store,
		withID: domain.Volume.WithID,
		decode: func(ctx context.Context, e entry, res *domain.MapperResult) (domain.Volume, error) {
			layout, err := importFieldLayout(ctx, e.values, refs, res, "volume "+e.key)
			if err != nil {
				return domain.Volume{}, err
			}
			return domain.Volume{
				Handle:      e.key,
				Name:        e.values.String("name"),
				Type:        e.values.String("type"),
				HasURLs:     e.values.Bool("hasUrls"),
				URL:         e.values.String("url"),
				Settings:    e.values.Map("settings"),
				FieldLayout: layout,
			}, nil
		},
	}
	im.run(ctx, entries, force, res)
	return res
}

// AssetTransformMapper maps named image transforms.
type AssetTransformMapper struct {
	store driven.RecordStore[domain.AssetTransform]
}

var _ Mapper = (*AssetTransformMapper)(nil)

// NewAssetTransformMapper creates an asset transform mapper.
func NewAssetTransformMapper(store driven.RecordStore[domain.AssetTransform]) *AssetTransformMapper {
	return &AssetTransformMapper{store: store}
}

// Handle returns the mapper handle.
func (m *AssetTransformMapper) Handle() string { return MapperAssetTransforms }

// Export converts transforms into {handle: {name, mode, position, width, ...}}.
func (m *AssetTransformMapper) Export(_ context.Context, records []domain.Record, _ *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeAssetTransforms)
	fragment := exportKeyed(records, res, func(a domain.AssetTransform) map[string]any {
		entry := map[string]any{
			"name":     a.Name,
			"mode":     a.Mode,
			"position": a.Position,
		}
		if a.Width > 0 {
			entry["width"] = a.Width
		}
		if a.Height > 0 {
			entry["height"] = a.Height
		}
		if a.Format != "" {
			entry["format"] = a.Format
		}
		if a.Quality > 0 {
			entry["quality"] = a.Quality
		}
		return entry
	})
	return fragment, res
}

// Import reconciles transforms.
func (m *AssetTransformMapper) Import(ctx context.Context, fragment any, force bool, _ *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeAssetTransforms)
	entries, err := keyedEntries(fragment)
	if err != nil {
		return fragmentError(res, err)
	}

	im := importer[domain.AssetTransform]{
		noun:   "asset transform",
		store:  m.store,
		withID: domain.AssetTransform.WithID,
		decode: func(_ context.Context, e entry, _ *domain.MapperResult) (domain.AssetTransform, error) {
			return domain.AssetTransform{
				Handle:   e.key,
				Name:     e.values.String("name"),
				Mode:     e.values.String("mode"),
				Position: e.values.String("position"),
				Width:    e.values.Int("width"),
				Height:   e.values.Int("height"),
				Format:   e.values.String("format"),
				Quality:  e.values.Int("quality"),
			}, nil
		},
	}
	im.run(ctx, entries, force, res)
	return res
}
