// Package cli provides the cobra commands of the schematic binary.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/core/ports/driving"
	"github.com/born05/schematic/internal/logger"
)

// version is set at build time.
var version = "dev"

// errRunFailed is returned when a run finished with at least one failed
// data type. The per-category report has already been printed.
var errRunFailed = errors.New("one or more data types failed")

// DocumentOpener returns the document store for path. An empty path
// selects the configured document. Stores opened for import expand
// %NAME% placeholders and merge the configured override document over
// the loaded one. Stores opened for export keep the text as written.
type DocumentOpener func(path string, forImport bool) (driven.DocumentStore, error)

// Services are the ports the commands run against.
type Services struct {
	Sync      driving.SyncService
	Settings  driving.SettingsService
	Documents DocumentOpener
}

// Bootstrap builds the services for a config directory. It runs once,
// after flags are parsed and before the command.
type Bootstrap func(ctx context.Context, configDir string) (*Services, error)

var (
	syncService     driving.SyncService
	settingsService driving.SettingsService
	openDocument    DocumentOpener
	bootstrap       Bootstrap
)

var (
	verbose   bool
	configDir string
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "schematic",
	Short: "Synchronise site structure between environments",
	Long: `Schematic exports the structure of an installation (plugins, sites,
volumes, fields, sections, category groups, global sets and element
index settings) to a YAML document, and imports that document into
another installation to reproduce the same structure.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace every data type to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing schematic.toml")
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipBootstrap] != "" {
		return nil
	}
	services, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// SetServices installs the ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	syncService = s.Sync
	settingsService = s.Settings
	openDocument = s.Documents
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
