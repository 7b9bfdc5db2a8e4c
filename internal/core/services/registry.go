package services

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// Built-in mapper handles.
const (
	MapperPlugins         = "pluginMapper"
	MapperSites           = "siteMapper"
	MapperVolumes         = "volumeMapper"
	MapperAssetTransforms = "assetTransformMapper"
	MapperFields          = "fieldMapper"
	MapperSections        = "sectionMapper"
	MapperCategoryGroups  = "categoryGroupMapper"
	MapperGlobalSets      = "globalSetMapper"
	MapperElementIndexes  = "elementIndexMapper"
)

// DataTypeRegistry is the ordered, immutable set of known data types.
// Order reflects dependencies: plugins first, element indexes last.
type DataTypeRegistry struct {
	ordered []DataType
	byID    map[string]DataType
}

// NewDataTypeRegistry creates a registry ordered by descriptor weight.
// Equal weights keep argument order. Every duplicated handle is reported.
func NewDataTypeRegistry(types ...DataType) (*DataTypeRegistry, error) {
	r := &DataTypeRegistry{
		byID: make(map[string]DataType, len(types)),
	}

	var errs error
	for _, dt := range types {
		handle := dt.Handle()
		if handle == "" {
			errs = multierr.Append(errs, fmt.Errorf("data type without handle: %w", domain.ErrInvalidInput))
			continue
		}
		if _, exists := r.byID[handle]; exists {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", domain.ErrDuplicateDataType, handle))
			continue
		}
		r.byID[handle] = dt
		r.ordered = append(r.ordered, dt)
	}
	if errs != nil {
		return nil, errs
	}

	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].Descriptor().Weight < r.ordered[j].Descriptor().Weight
	})
	return r, nil
}

// Get returns a data type by handle.
func (r *DataTypeRegistry) Get(handle string) (DataType, error) {
	dt, ok := r.byID[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDataType, handle)
	}
	return dt, nil
}

// All returns every data type in processing order.
func (r *DataTypeRegistry) All() []DataType {
	result := make([]DataType, len(r.ordered))
	copy(result, r.ordered)
	return result
}

// Handles returns every handle in processing order.
func (r *DataTypeRegistry) Handles() []string {
	result := make([]string, len(r.ordered))
	for i, dt := range r.ordered {
		result[i] = dt.Handle()
	}
	return result
}

// Descriptors returns every descriptor in processing order.
func (r *DataTypeRegistry) Descriptors() []domain.DataTypeDescriptor {
	result := make([]domain.DataTypeDescriptor, len(r.ordered))
	for i, dt := range r.ordered {
		result[i] = dt.Descriptor()
	}
	return result
}

// Select returns the data types of a run in processing order.
// An empty include list selects everything. Unknown handles in either
// list are configuration errors. Excluding a built-in data type that is
// not registered, because of the edition or the configured exclusions,
// is allowed.
func (r *DataTypeRegistry) Select(include, exclude []string) ([]DataType, error) {
	for _, h := range include {
		if _, err := r.Get(h); err != nil {
			return nil, err
		}
	}
	for _, h := range exclude {
		if _, err := r.Get(h); err != nil && !isBuiltin(h) {
			return nil, err
		}
	}

	included := toSet(include)
	excluded := toSet(exclude)

	var result []DataType
	for _, dt := range r.ordered {
		if len(included) > 0 && !included[dt.Handle()] {
			continue
		}
		if excluded[dt.Handle()] {
			continue
		}
		result = append(result, dt)
	}
	return result, nil
}

// MapperRegistry maps mapper handles to mappers.
type MapperRegistry struct {
	mappers map[string]Mapper
}

// NewMapperRegistry creates a mapper registry. Duplicated handles are reported.
func NewMapperRegistry(mappers ...Mapper) (*MapperRegistry, error) {
	r := &MapperRegistry{mappers: make(map[string]Mapper, len(mappers))}

	var errs error
	for _, m := range mappers {
		if _, exists := r.mappers[m.Handle()]; exists {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", domain.ErrDuplicateMapper, m.Handle()))
			continue
		}
		r.mappers[m.Handle()] = m
	}
	if errs != nil {
		return nil, errs
	}
	return r, nil
}

// Resolve returns the mapper a data type binds to.
func (r *MapperRegistry) Resolve(dt DataType) (Mapper, error) {
	m, ok := r.mappers[dt.MapperHandle()]
	if !ok {
		return nil, fmt.Errorf("data type %q: %w %q", dt.Handle(), domain.ErrUnknownMapper, dt.MapperHandle())
	}
	return m, nil
}

// builtinDescriptors lists the built-in categories in dependency order.
// Element index settings need the Pro edition.
func builtinDescriptors() []domain.DataTypeDescriptor {
	return []domain.DataTypeDescriptor{
		{Handle: domain.DataTypePlugins, MapperHandle: MapperPlugins, Weight: 10},
		{Handle: domain.DataTypeSites, MapperHandle: MapperSites, Weight: 20},
		{Handle: domain.DataTypeVolumes, MapperHandle: MapperVolumes, Weight: 40},
		{Handle: domain.DataTypeAssetTransforms, MapperHandle: MapperAssetTransforms, Weight: 50},
		{Handle: domain.DataTypeFields, MapperHandle: MapperFields, Weight: 30},
		{Handle: domain.DataTypeSections, MapperHandle: MapperSections, Weight: 60},
		{Handle: domain.DataTypeCategoryGroups, MapperHandle: MapperCategoryGroups, Weight: 70},
		{Handle: domain.DataTypeGlobalSets, MapperHandle: MapperGlobalSets, Weight: 80},
		{Handle: domain.DataTypeElementIndexes, MapperHandle: MapperElementIndexes, Weight: 90, Edition: domain.EditionPro},
	}
}

func isBuiltin(handle string) bool {
	for _, desc := range builtinDescriptors() {
		if desc.Handle == handle {
			return true
		}
	}
	return false
}

// DefaultDataTypes builds the built-in data types over an environment.
func DefaultDataTypes(env *driven.Environment) []DataType {
	d := make(map[string]domain.DataTypeDescriptor)
	for _, desc := range builtinDescriptors() {
		d[desc.Handle] = desc
	}

	return []DataType{
		NewStoreDataType(d[domain.DataTypePlugins], env.Plugins, byHandle[domain.Plugin]),
		NewStoreDataType(d[domain.DataTypeSites], env.Sites, bySortOrder),
		NewStoreDataType(d[domain.DataTypeFields], env.Fields, nil),
		NewStoreDataType(d[domain.DataTypeVolumes], env.Volumes, nil),
		NewStoreDataType(d[domain.DataTypeAssetTransforms], env.AssetTransforms, nil),
		NewStoreDataType(d[domain.DataTypeSections], env.Sections, nil),
		NewStoreDataType(d[domain.DataTypeCategoryGroups], env.CategoryGroups, nil),
		NewStoreDataType(d[domain.DataTypeGlobalSets], env.GlobalSets, nil),
		NewElementIndexDataType(d[domain.DataTypeElementIndexes], env.ElementIndexes),
	}
}

// DefaultMappers builds the built-in mappers over an environment.
func DefaultMappers(env *driven.Environment) []Mapper {
	return []Mapper{
		NewPluginMapper(env.Plugins),
		NewSiteMapper(env.Sites),
		NewVolumeMapper(env.Volumes),
		NewAssetTransformMapper(env.AssetTransforms),
		NewFieldMapper(env.Fields),
		NewSectionMapper(env.Sections),
		NewCategoryGroupMapper(env.CategoryGroups),
		NewGlobalSetMapper(env.GlobalSets),
		NewElementIndexMapper(env.ElementIndexes),
	}
}

// BuildRegistry resolves edition gating and exclusions once and returns
// the final registry for a process.
func BuildRegistry(cfg domain.Config, types []DataType) (*DataTypeRegistry, error) {
	var enabled []DataType
	for _, dt := range types {
		if dt.Descriptor().Edition > cfg.Edition {
			continue
		}
		if cfg.Excludes(dt.Handle()) {
			continue
		}
		enabled = append(enabled, dt)
	}
	return NewDataTypeRegistry(enabled...)
}

func byHandle[T domain.Record](a, b T) bool {
	return a.NaturalKey() < b.NaturalKey()
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
