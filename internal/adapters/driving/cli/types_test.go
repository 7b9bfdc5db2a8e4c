package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born05/schematic/internal/core/domain"
)

func TestTypesCmd_ListsDataTypes(t *testing.T) {
	sync := &mockSyncService{types: []domain.DataTypeDescriptor{
		{Handle: "plugins", MapperHandle: "pluginMapper", Weight: 10},
		{Handle: "sites", MapperHandle: "siteMapper", Weight: 20},
		{Handle: "elementIndexes", MapperHandle: "elementIndexMapper", Weight: 90},
	}}
	buf := setupCLITest(t, sync, nil, nil)

	rootCmd.SetArgs([]string{"types"})
	require.NoError(t, rootCmd.Execute())

	want := "HANDLE          MAPPER\n" +
		"plugins         pluginMapper\n" +
		"sites           siteMapper\n" +
		"elementIndexes  elementIndexMapper\n"
	assert.Equal(t, want, buf.String())
}

func TestTypesCmd_Empty(t *testing.T) {
	buf := setupCLITest(t, &mockSyncService{}, nil, nil)

	rootCmd.SetArgs([]string{"types"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "No data types registered.")
}

func TestTypesCmd_RejectsArgs(t *testing.T) {
	setupCLITest(t, &mockSyncService{}, nil, nil)

	rootCmd.SetArgs([]string{"types", "sites"})
	assert.Error(t, rootCmd.Execute())
}
