package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "schematic.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, FileName), store.Path())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("edition = "), 0o644))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_LoadFlattensTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
edition = "solo"
exclude = ["plugins", "elementIndexes"]
force = true

[document]
path = "config/project.yml"
split = false

[storage]
path = ".data"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0o644))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "solo", store.GetString("edition"))
	assert.Equal(t, []string{"plugins", "elementIndexes"}, store.GetStringSlice("exclude"))
	assert.True(t, store.GetBool("force"))
	assert.Equal(t, "config/project.yml", store.GetString("document.path"))
	assert.False(t, store.GetBool("document.split"))
	assert.Equal(t, ".data", store.GetString("storage.path"))
	assert.Equal(t, []string{
		"document.path", "document.split", "edition", "exclude", "force", "storage.path",
	}, store.Keys())
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("document.path", "config/schema"))
	require.NoError(t, store.Set("document.split", true))
	require.NoError(t, store.Set("edition", "pro"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[document]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "config/schema", reloaded.GetString("document.path"))
	assert.True(t, reloaded.GetBool("document.split"))
	assert.Equal(t, "pro", reloaded.GetString("edition"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("retries", int64(3)))
	require.NoError(t, store.Set("name", "schematic"))

	assert.Equal(t, 3, store.GetInt("retries"))
	assert.Zero(t, store.GetInt("name"))
	assert.Empty(t, store.GetString("retries"))
	assert.False(t, store.GetBool("name"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_GetStringSlice_CommaSeparated(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("exclude", "plugins, sites ,"))

	assert.Equal(t, []string{"plugins", "sites"}, store.GetStringSlice("exclude"))
}

func TestConfigStore_SaveAndLoad(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("force", true))
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.True(t, store.GetBool("force"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"edition":        "pro",
		"document.path":  "a.yml",
		"document.split": true,
		"a":              1,
		"a.b":            2,
	})

	assert.Equal(t, map[string]any{
		"edition":  "pro",
		"document": map[string]any{"path": "a.yml", "split": true},
		"a":        1,
	}, nested)
}
