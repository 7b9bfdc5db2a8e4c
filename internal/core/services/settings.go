package services

import (
	"fmt"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/core/ports/driving"
	"github.com/born05/schematic/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyEdition          = "edition"
	keyExclude          = "exclude"
	keyForce            = "force"
	keyDocumentPath     = "document.path"
	keyDocumentSplit    = "document.split"
	keyDocumentOverride = "document.override"
	keyStoragePath      = "storage.path"
)

var knownKeys = map[string]bool{
	keyEdition:          true,
	keyExclude:          true,
	keyForce:            true,
	keyDocumentPath:     true,
	keyDocumentSplit:    true,
	keyDocumentOverride: true,
	keyStoragePath:      true,
}

// SettingsService resolves the process configuration from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves the configuration, applying defaults for missing keys.
// An unknown edition is an error; unknown keys are only logged.
func (s *SettingsService) Get() (domain.Config, error) {
	defaults := domain.DefaultConfig()

	for _, key := range s.configStore.Keys() {
		if !knownKeys[key] {
			logger.Warn("Unknown config key %q in %s", key, s.configStore.Path())
		}
	}

	edition := defaults.Edition
	if raw := s.configStore.GetString(keyEdition); raw != "" {
		parsed, err := domain.ParseEdition(raw)
		if err != nil {
			return domain.Config{}, fmt.Errorf("edition %q: %w", raw, err)
		}
		edition = parsed
	}

	return domain.Config{
		Edition: edition,
		Exclude: s.configStore.GetStringSlice(keyExclude),
		Force:   s.getBool(keyForce, defaults.Force),
		Document: domain.DocumentConfig{
			Path:         s.getString(keyDocumentPath, defaults.Document.Path),
			Split:        s.getBool(keyDocumentSplit, defaults.Document.Split),
			OverridePath: s.getString(keyDocumentOverride, defaults.Document.OverridePath),
		},
		Storage: domain.StorageConfig{
			Path: s.getString(keyStoragePath, defaults.Storage.Path),
		},
	}, nil
}

// SetEdition stores the edition.
func (s *SettingsService) SetEdition(edition domain.Edition) error {
	if edition != domain.EditionSolo && edition != domain.EditionPro {
		return fmt.Errorf("edition %d: %w", edition, domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyEdition, edition.String()); err != nil {
		return fmt.Errorf("save edition: %w", err)
	}
	return nil
}

// SetExclude stores the list of excluded data types.
func (s *SettingsService) SetExclude(handles []string) error {
	if err := s.configStore.Set(keyExclude, handles); err != nil {
		return fmt.Errorf("save exclude: %w", err)
	}
	return nil
}

// SetDocumentPath stores the document location.
func (s *SettingsService) SetDocumentPath(path string, split bool) error {
	if path == "" {
		return fmt.Errorf("document path: %w", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyDocumentPath, path); err != nil {
		return fmt.Errorf("save document path: %w", err)
	}
	if err := s.configStore.Set(keyDocumentSplit, split); err != nil {
		return fmt.Errorf("save document split: %w", err)
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
