package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/born05/schematic/internal/adapters/driven/storage/memory"
	"github.com/born05/schematic/internal/core/domain"
)

func stubDataType(handle, mapper string, weight int) DataType {
	return NewStoreDataType[domain.GlobalSet](
		domain.DataTypeDescriptor{Handle: handle, MapperHandle: mapper, Weight: weight},
		nil,
		nil,
	)
}

// ==================== DataTypeRegistry ====================

func TestNewDataTypeRegistry_OrdersByWeight(t *testing.T) {
	registry, err := NewDataTypeRegistry(
		stubDataType("c", "m", 30),
		stubDataType("a", "m", 10),
		stubDataType("b2", "m", 20),
		stubDataType("b1", "m", 20),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b2", "b1", "c"}, registry.Handles())
	assert.Len(t, registry.All(), 4)
	assert.Equal(t, 10, registry.Descriptors()[0].Weight)
}

func TestNewDataTypeRegistry_ReportsEveryDuplicate(t *testing.T) {
	_, err := NewDataTypeRegistry(
		stubDataType("sites", "m", 1),
		stubDataType("sites", "m", 2),
		stubDataType("fields", "m", 3),
		stubDataType("fields", "m", 4),
		stubDataType("", "m", 5),
	)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], domain.ErrDuplicateDataType)
	assert.ErrorIs(t, errs[1], domain.ErrDuplicateDataType)
	assert.ErrorIs(t, errs[2], domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"sites"`)
	assert.Contains(t, err.Error(), `"fields"`)
}

func TestDataTypeRegistry_Get(t *testing.T) {
	registry, err := NewDataTypeRegistry(stubDataType("sites", MapperSites, 1))
	require.NoError(t, err)

	dt, err := registry.Get("sites")
	require.NoError(t, err)
	assert.Equal(t, MapperSites, dt.MapperHandle())

	_, err = registry.Get("entries")
	assert.ErrorIs(t, err, domain.ErrUnknownDataType)
}

func TestDataTypeRegistry_Select(t *testing.T) {
	registry, err := NewDataTypeRegistry(
		stubDataType("plugins", "m", 1),
		stubDataType("sites", "m", 2),
		stubDataType("fields", "m", 3),
	)
	require.NoError(t, err)

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{name: "everything", want: []string{"plugins", "sites", "fields"}},
		{name: "include keeps registry order", include: []string{"fields", "plugins"}, want: []string{"plugins", "fields"}},
		{name: "exclude", exclude: []string{"sites"}, want: []string{"plugins", "fields"}},
		{name: "exclude wins", include: []string{"sites"}, exclude: []string{"sites"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := registry.Select(tt.include, tt.exclude)
			require.NoError(t, err)

			var handles []string
			for _, dt := range selected {
				handles = append(handles, dt.Handle())
			}
			assert.Equal(t, tt.want, handles)
		})
	}

	_, err = registry.Select([]string{"entries"}, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownDataType)
	_, err = registry.Select(nil, []string{"users"})
	assert.ErrorIs(t, err, domain.ErrUnknownDataType)
}

func TestDataTypeRegistry_SelectExcludesInactiveBuiltin(t *testing.T) {
	types := DefaultDataTypes(memory.NewEnvironment().Driven())
	registry, err := BuildRegistry(domain.Config{Edition: domain.EditionSolo, Exclude: []string{"plugins"}}, types)
	require.NoError(t, err)

	selected, err := registry.Select(nil, []string{domain.DataTypeElementIndexes, domain.DataTypePlugins, domain.DataTypeSites})
	require.NoError(t, err)

	var handles []string
	for _, dt := range selected {
		handles = append(handles, dt.Handle())
	}
	assert.NotContains(t, handles, domain.DataTypeSites)
	assert.Len(t, handles, 6)

	_, err = registry.Select([]string{domain.DataTypeElementIndexes}, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownDataType)
}

// ==================== MapperRegistry ====================

func TestNewMapperRegistry_Duplicate(t *testing.T) {
	env := memory.NewEnvironment().Driven()

	_, err := NewMapperRegistry(NewSiteMapper(env.Sites), NewSiteMapper(env.Sites))

	assert.ErrorIs(t, err, domain.ErrDuplicateMapper)
}

func TestMapperRegistry_Resolve(t *testing.T) {
	env := memory.NewEnvironment().Driven()
	mappers, err := NewMapperRegistry(DefaultMappers(env)...)
	require.NoError(t, err)

	for _, dt := range DefaultDataTypes(env) {
		m, err := mappers.Resolve(dt)
		require.NoError(t, err, dt.Handle())
		assert.Equal(t, dt.MapperHandle(), m.Handle())
	}

	_, err = mappers.Resolve(stubDataType("entries", "entryMapper", 1))
	assert.ErrorIs(t, err, domain.ErrUnknownMapper)
	assert.Contains(t, err.Error(), `"entries"`)
}

// ==================== BuildRegistry ====================

func TestBuildRegistry_EditionGating(t *testing.T) {
	types := DefaultDataTypes(memory.NewEnvironment().Driven())

	pro, err := BuildRegistry(domain.Config{Edition: domain.EditionPro}, types)
	require.NoError(t, err)
	assert.Contains(t, pro.Handles(), domain.DataTypeElementIndexes)

	solo, err := BuildRegistry(domain.Config{Edition: domain.EditionSolo}, types)
	require.NoError(t, err)
	assert.NotContains(t, solo.Handles(), domain.DataTypeElementIndexes)
	assert.Len(t, solo.Handles(), 8)
}

func TestBuildRegistry_Exclude(t *testing.T) {
	types := DefaultDataTypes(memory.NewEnvironment().Driven())

	registry, err := BuildRegistry(domain.Config{Edition: domain.EditionPro, Exclude: []string{"plugins"}}, types)
	require.NoError(t, err)

	assert.NotContains(t, registry.Handles(), "plugins")
	_, err = registry.Get("plugins")
	assert.ErrorIs(t, err, domain.ErrUnknownDataType)
}

// ==================== DataType ====================

func TestStoreDataType_SitesSortedBySortOrder(t *testing.T) {
	env := memory.NewEnvironment()
	save(t, env.Sites, domain.Site{Handle: "de", SortOrder: 3})
	save(t, env.Sites, domain.Site{Handle: "fr", SortOrder: 2})
	save(t, env.Sites, domain.Site{Handle: "en", SortOrder: 2})

	registry, err := BuildRegistry(domain.DefaultConfig(), DefaultDataTypes(env.Driven()))
	require.NoError(t, err)
	dt, err := registry.Get("sites")
	require.NoError(t, err)

	records, err := dt.Records(context.Background())
	require.NoError(t, err)

	var handles []string
	for _, r := range records {
		handles = append(handles, r.NaturalKey())
	}
	assert.Equal(t, []string{"en", "fr", "de"}, handles)
}

func TestStoreDataType_NilStoreIsEmpty(t *testing.T) {
	records, err := stubDataType("globalSets", MapperGlobalSets, 1).Records(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestElementIndexDataType_Records(t *testing.T) {
	store := memory.NewElementIndexStore("entries", "assets")
	require.NoError(t, store.SaveSettings(context.Background(), domain.ElementIndex{
		ElementType: "assets",
		Sources:     []domain.ElementIndexSource{{Key: "*"}},
	}))
	dt := NewElementIndexDataType(domain.DataTypeDescriptor{Handle: "elementIndexes"}, store)

	records, err := dt.Records(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "entries", records[0].NaturalKey())
	assert.Empty(t, records[0].(domain.ElementIndex).Sources)
	assert.Len(t, records[1].(domain.ElementIndex).Sources, 1)
}
