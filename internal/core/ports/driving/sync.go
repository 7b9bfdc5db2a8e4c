package driving

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
)

// SyncService exports an environment's structure to a portable document
// and imports documents back into the environment.
type SyncService interface {
	// Export builds a document from the live records of every selected data type.
	// The returned error is non-nil only for configuration errors.
	Export(ctx context.Context, opts ExportOptions) (*domain.Document, *domain.AggregateResult, error)

	// Import applies a document to the live records of every selected data type.
	// Category failures are reported in the result; the returned error is
	// non-nil only for configuration errors and cancellation.
	Import(ctx context.Context, doc *domain.Document, opts ImportOptions) (*domain.AggregateResult, error)

	// DataTypes returns the registered data types in processing order.
	DataTypes() []domain.DataTypeDescriptor

	// State returns the state of the current or most recent run.
	State() domain.RunState
}

// ExportOptions selects which data types an export covers.
type ExportOptions struct {
	// DataTypes restricts the run to the named handles. Empty means all.
	DataTypes []string

	// Exclude skips the named handles.
	Exclude []string
}

// ImportOptions controls an import run.
type ImportOptions struct {
	// Force overwrites conflicting live records instead of warning,
	// and prunes absent records in prunable data types.
	Force bool

	// DataTypes restricts the run to the named handles. Empty means all.
	// The caller is responsible for prerequisite data types.
	DataTypes []string

	// Exclude skips the named handles.
	Exclude []string
}
