package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/core/ports/driving"
)

// mockSyncService implements driving.SyncService for testing.
type mockSyncService struct {
	doc    *domain.Document
	result *domain.AggregateResult
	err    error
	types  []domain.DataTypeDescriptor

	exportOpts *driving.ExportOptions
	importOpts *driving.ImportOptions
	imported   *domain.Document
	imports    int
}

func (m *mockSyncService) Export(_ context.Context, opts driving.ExportOptions) (*domain.Document, *domain.AggregateResult, error) {
	m.exportOpts = &opts
	if m.err != nil {
		return nil, nil, m.err
	}
	doc := m.doc
	if doc == nil {
		doc = domain.NewDocument()
	}
	return doc, m.resultOrEmpty(), nil
}

func (m *mockSyncService) Import(_ context.Context, doc *domain.Document, opts driving.ImportOptions) (*domain.AggregateResult, error) {
	m.importOpts = &opts
	m.imported = doc
	m.imports++
	if m.err != nil {
		return nil, m.err
	}
	return m.resultOrEmpty(), nil
}

func (m *mockSyncService) DataTypes() []domain.DataTypeDescriptor {
	return m.types
}

func (m *mockSyncService) State() domain.RunState {
	return domain.RunIdle
}

func (m *mockSyncService) resultOrEmpty() *domain.AggregateResult {
	if m.result != nil {
		return m.result
	}
	return newAggregate()
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	cfg    domain.Config
	getErr error
	setErr error

	edition  *domain.Edition
	exclude  []string
	docPath  string
	docSplit bool
}

func (m *mockSettingsService) Get() (domain.Config, error) {
	return m.cfg, m.getErr
}

func (m *mockSettingsService) SetEdition(edition domain.Edition) error {
	m.edition = &edition
	return m.setErr
}

func (m *mockSettingsService) SetExclude(handles []string) error {
	m.exclude = handles
	return m.setErr
}

func (m *mockSettingsService) SetDocumentPath(path string, split bool) error {
	m.docPath = path
	m.docSplit = split
	return m.setErr
}

// mockDocumentStore implements driven.DocumentStore for testing.
type mockDocumentStore struct {
	path    string
	doc     *domain.Document
	loadErr error
	saveErr error
	saved   *domain.Document

	openedPath string
	forImport  bool
}

func (m *mockDocumentStore) Load(_ context.Context) (*domain.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.doc == nil {
		return nil, fmt.Errorf("%s: %w", m.path, domain.ErrNotFound)
	}
	return m.doc, nil
}

func (m *mockDocumentStore) Save(_ context.Context, doc *domain.Document) error {
	m.saved = doc
	return m.saveErr
}

func (m *mockDocumentStore) Path() string {
	return m.path
}

func (m *mockDocumentStore) opener() DocumentOpener {
	return func(path string, forImport bool) (driven.DocumentStore, error) {
		m.openedPath = path
		m.forImport = forImport
		return m, nil
	}
}

func newAggregate(results ...*domain.MapperResult) *domain.AggregateResult {
	agg := domain.NewAggregateResult()
	for _, r := range results {
		_ = agg.Merge(r)
	}
	agg.Finalize()
	return agg
}

// setupCLITest installs the mocks and resets command flags.
func setupCLITest(t *testing.T, sync *mockSyncService, settings *mockSettingsService, store *mockDocumentStore) *bytes.Buffer {
	t.Helper()

	oldSync, oldSettings, oldOpen, oldBootstrap := syncService, settingsService, openDocument, bootstrap
	syncService = nil
	if sync != nil {
		syncService = sync
	}
	settingsService = nil
	if settings != nil {
		settingsService = settings
	}
	openDocument = nil
	if store != nil {
		openDocument = store.opener()
	}
	bootstrap = nil

	exportFile, exportExclude = "", nil
	importFile, importForce, importExclude, importWatch = "", false, nil, false
	settingsSplit = false
	configDir, verbose = "", false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		syncService, settingsService, openDocument, bootstrap = oldSync, oldSettings, oldOpen, oldBootstrap
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return buf
}
