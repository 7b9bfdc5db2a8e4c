package driving

import "github.com/born05/schematic/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves the current configuration, applying defaults.
	Get() (domain.Config, error)

	// SetEdition stores the edition.
	SetEdition(edition domain.Edition) error

	// SetExclude stores the list of excluded data types.
	SetExclude(handles []string) error

	// SetDocumentPath stores the document location.
	SetDocumentPath(path string, split bool) error
}
