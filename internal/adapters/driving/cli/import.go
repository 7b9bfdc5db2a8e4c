package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/core/ports/driving"
)

var (
	importFile    string
	importForce   bool
	importExclude []string
	importWatch   bool
)

var importCmd = &cobra.Command{
	Use:   "import [data-type...]",
	Short: "Import a document into the environment",
	Long: `Applies the portable document to the environment. Records missing
from the environment are created. Records that differ are reported and
left unchanged unless --force is given, which also removes sites and
global sets that are not in the document.

If data types are named, only those are imported. Categories they depend
on (sites for fields, fields for layouts) must already be in place.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "document path (default from config)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "overwrite differing records and prune absent ones")
	importCmd.Flags().StringSliceVar(&importExclude, "exclude", nil, "data types to skip")
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "re-import whenever the document changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	if openDocument == nil {
		return errors.New("document store not configured")
	}

	force := importForce
	if settingsService != nil {
		cfg, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		force = force || cfg.Force
	}

	store, err := openDocument(importFile, true)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	opts := driving.ImportOptions{
		Force:     force,
		DataTypes: args,
		Exclude:   importExclude,
	}

	ctx := cmd.Context()
	err = importOnce(ctx, cmd, store, opts)
	if !importWatch {
		return err
	}
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
	}

	return watchDocument(ctx, cmd, store.Path(), func() {
		cmd.Printf("\nDocument changed, importing %s\n", store.Path())
		if err := importOnce(ctx, cmd, store, opts); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
}

func importOnce(ctx context.Context, cmd *cobra.Command, store driven.DocumentStore, opts driving.ImportOptions) error {
	doc, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no document at %s, run export first", store.Path())
		}
		return fmt.Errorf("failed to read document: %w", err)
	}

	result, err := syncService.Import(ctx, doc, opts)
	if result != nil {
		printResult(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return outcomeError(result)
}
