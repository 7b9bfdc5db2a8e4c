package services

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born05/schematic/internal/adapters/driven/storage/memory"
	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/logger"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	cfg, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("edition", "solo")
	_ = store.Set("exclude", "plugins, elementIndexes")
	_ = store.Set("force", true)
	_ = store.Set("document.path", "config/project")
	_ = store.Set("document.split", true)
	_ = store.Set("document.override", "config/local.yml")
	_ = store.Set("storage.path", "/var/lib/schematic")

	cfg, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.EditionSolo, cfg.Edition)
	assert.Equal(t, []string{"plugins", "elementIndexes"}, cfg.Exclude)
	assert.True(t, cfg.Force)
	assert.Equal(t, "config/project", cfg.Document.Path)
	assert.True(t, cfg.Document.Split)
	assert.Equal(t, "config/local.yml", cfg.Document.OverridePath)
	assert.Equal(t, "/var/lib/schematic", cfg.Storage.Path)
}

func TestSettingsService_Get_InvalidEdition(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("edition", "enterprise")

	_, err := NewSettingsService(store).Get()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Get_LogsUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	store := memory.NewConfigStore()
	_ = store.Set("documnet.path", "typo.yml")

	_, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"documnet.path"`)
}

func TestSettingsService_SetEdition(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetEdition(domain.EditionSolo))
	assert.Equal(t, "solo", store.GetString("edition"))

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.EditionSolo, cfg.Edition)

	assert.ErrorIs(t, service.SetEdition(domain.Edition(9)), domain.ErrInvalidInput)
}

func TestSettingsService_SetExclude(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetExclude([]string{"plugins"}))

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"plugins"}, cfg.Exclude)
}

func TestSettingsService_SetDocumentPath(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetDocumentPath("config/schema", true))

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "config/schema", cfg.Document.Path)
	assert.True(t, cfg.Document.Split)

	assert.ErrorIs(t, service.SetDocumentPath("", false), domain.ErrInvalidInput)
}
