package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driving"
)

var (
	exportFile    string
	exportExclude []string
)

var exportCmd = &cobra.Command{
	Use:   "export [data-type...]",
	Short: "Export the environment structure to a document",
	Long: `Exports the live structure of every registered data type to the
portable document. If data types are named, only those are exported and
the other categories already in the document are kept.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "document path (default from config)")
	exportCmd.Flags().StringSliceVar(&exportExclude, "exclude", nil, "data types to skip")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	if openDocument == nil {
		return errors.New("document store not configured")
	}

	ctx := cmd.Context()
	store, err := openDocument(exportFile, false)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	doc, result, err := syncService.Export(ctx, driving.ExportOptions{
		DataTypes: args,
		Exclude:   exportExclude,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(args) > 0 {
		existing, err := store.Load(ctx)
		switch {
		case err == nil:
			doc = overlay(existing, doc)
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("failed to read %s: %w", store.Path(), err)
		}
	}

	if err := store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	printResult(cmd, result)
	cmd.Printf("Exported %d data types to %s\n", len(result.Results()), store.Path())
	return outcomeError(result)
}

// overlay replaces the fragments of base with those in doc.
func overlay(base, doc *domain.Document) *domain.Document {
	for _, handle := range doc.Handles() {
		fragment, _ := doc.Get(handle)
		base.Set(handle, fragment)
	}
	return base
}
