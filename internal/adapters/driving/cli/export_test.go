package cli

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born05/schematic/internal/adapters/driven/document"
	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

func exportedDocument() *domain.Document {
	doc := domain.NewDocument()
	doc.Set("sites", []any{map[string]any{"handle": "en"}})
	doc.Set("fields", map[string]any{})
	return doc
}

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export [data-type...]", exportCmd.Use)
}

func TestExportCmd_Flags(t *testing.T) {
	assert.NotNil(t, exportCmd.Flags().Lookup("file"))
	assert.NotNil(t, exportCmd.Flags().Lookup("exclude"))
}

func TestExportCmd_WritesDocument(t *testing.T) {
	sync := &mockSyncService{
		doc:    exportedDocument(),
		result: newAggregate(domain.NewMapperResult("sites"), domain.NewMapperResult("fields")),
	}
	store := &mockDocumentStore{path: "config/schema.yml"}
	buf := setupCLITest(t, sync, nil, store)

	rootCmd.SetArgs([]string{"export"})
	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Same(t, sync.doc, store.saved)
	assert.Empty(t, store.openedPath)
	assert.False(t, store.forImport)
	assert.Contains(t, buf.String(), "sites")
	assert.Contains(t, buf.String(), "Result: synchronized")
	assert.Contains(t, buf.String(), "Exported 2 data types to config/schema.yml")
}

func TestExportCmd_PassesOptions(t *testing.T) {
	sync := &mockSyncService{doc: exportedDocument()}
	store := &mockDocumentStore{path: "out.yml"}
	setupCLITest(t, sync, nil, store)

	rootCmd.SetArgs([]string{"export", "sites", "fields", "--file", "out.yml", "--exclude", "plugins,globalSets"})
	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, sync.exportOpts)
	assert.Equal(t, []string{"sites", "fields"}, sync.exportOpts.DataTypes)
	assert.Equal(t, []string{"plugins", "globalSets"}, sync.exportOpts.Exclude)
	assert.Equal(t, "out.yml", store.openedPath)
}

func TestExportCmd_TargetedKeepsOtherCategories(t *testing.T) {
	existing := domain.NewDocument()
	existing.Set("plugins", map[string]any{"seo": map[string]any{}})
	existing.Set("sites", []any{})

	exported := domain.NewDocument()
	exported.Set("sites", []any{map[string]any{"handle": "en"}})

	sync := &mockSyncService{doc: exported}
	store := &mockDocumentStore{path: "schema.yml", doc: existing}
	setupCLITest(t, sync, nil, store)

	rootCmd.SetArgs([]string{"export", "sites"})
	require.NoError(t, rootCmd.Execute())

	require.NotNil(t, store.saved)
	assert.Equal(t, []string{"plugins", "sites"}, store.saved.Handles())
	sites, _ := store.saved.Get("sites")
	assert.Equal(t, []any{map[string]any{"handle": "en"}}, sites)
}

func TestExportCmd_TargetedKeepsPlaceholders(t *testing.T) {
	t.Setenv("ASSETS_URL", "https://cdn.example.com")
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/schema.yml", []byte(
		"volumes:\n  images:\n    url: '%ASSETS_URL%/images'\nsites: []\n"), 0o644))

	exported := domain.NewDocument()
	exported.Set("sites", []any{map[string]any{"handle": "en"}})
	sync := &mockSyncService{doc: exported}
	setupCLITest(t, sync, nil, nil)

	var opened []bool
	openDocument = func(_ string, forImport bool) (driven.DocumentStore, error) {
		opened = append(opened, forImport)
		return document.NewFileStore(fs, "/schema.yml", document.NewYAMLCodec(nil)), nil
	}

	rootCmd.SetArgs([]string{"export", "sites"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []bool{false}, opened)
	data, err := util.ReadFile(fs, "/schema.yml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "%ASSETS_URL%/images")
	assert.NotContains(t, string(data), "cdn.example.com")
	assert.Contains(t, string(data), "handle: en")
}

func TestExportCmd_TargetedWithoutExistingDocument(t *testing.T) {
	sync := &mockSyncService{doc: exportedDocument()}
	store := &mockDocumentStore{path: "schema.yml"}
	setupCLITest(t, sync, nil, store)

	rootCmd.SetArgs([]string{"export", "sites"})
	require.NoError(t, rootCmd.Execute())

	assert.Same(t, sync.doc, store.saved)
}

func TestExportCmd_FailedCategoryExitsNonZero(t *testing.T) {
	failed := domain.NewMapperResult("plugins")
	failed.Fail(errors.New("store offline"))
	sync := &mockSyncService{doc: exportedDocument(), result: newAggregate(failed)}
	store := &mockDocumentStore{path: "schema.yml"}
	buf := setupCLITest(t, sync, nil, store)

	rootCmd.SetArgs([]string{"export"})
	err := rootCmd.Execute()

	assert.ErrorIs(t, err, errRunFailed)
	assert.NotNil(t, store.saved)
	assert.Contains(t, buf.String(), "FAIL plugins")
	assert.Contains(t, buf.String(), "store offline")
}

func TestExportCmd_ConfigurationError(t *testing.T) {
	sync := &mockSyncService{err: domain.ErrUnknownMapper}
	store := &mockDocumentStore{path: "schema.yml"}
	setupCLITest(t, sync, nil, store)

	rootCmd.SetArgs([]string{"export"})
	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrUnknownMapper)
	assert.Nil(t, store.saved)
}

func TestExportCmd_NilService(t *testing.T) {
	setupCLITest(t, nil, nil, &mockDocumentStore{})

	rootCmd.SetArgs([]string{"export"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync service not configured")
}

func TestExportCmd_NilDocumentStore(t *testing.T) {
	setupCLITest(t, &mockSyncService{}, nil, nil)

	rootCmd.SetArgs([]string{"export"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document store not configured")
}
