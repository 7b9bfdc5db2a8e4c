// Command schematic exports an installation's structure to a YAML
// document and imports it into another installation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/born05/schematic/internal/adapters/driven/config/file"
	"github.com/born05/schematic/internal/adapters/driven/document"
	"github.com/born05/schematic/internal/adapters/driven/storage/sqlite"
	"github.com/born05/schematic/internal/adapters/driving/cli"
	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/core/services"
	"github.com/born05/schematic/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// elementTypes are the element types of the host installation.
var elementTypes = []string{"entries", "categories", "assets", "users", "tags", "globalSets"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *sqlite.Store
	cli.SetVersion(version)
	cli.SetBootstrap(func(ctx context.Context, configDir string) (*cli.Services, error) {
		svc, s, err := bootstrap(ctx, configDir)
		store = s
		return svc, err
	})

	err := cli.Execute(ctx)
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Closing environment database: %v", cerr)
		}
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context, configDir string) (*cli.Services, *sqlite.Store, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	cfg, err := settings.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	logger.Debug("Edition %s, excluding %v", cfg.Edition, cfg.Exclude)

	store, err := sqlite.NewStore(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening environment: %w", err)
	}
	logger.Debug("Environment database %s", store.Path())

	env, err := store.Environment(ctx, elementTypes)
	if err != nil {
		return nil, store, fmt.Errorf("opening environment: %w", err)
	}

	registry, err := services.BuildRegistry(cfg, services.DefaultDataTypes(env))
	if err != nil {
		return nil, store, err
	}
	mappers, err := services.NewMapperRegistry(services.DefaultMappers(env)...)
	if err != nil {
		return nil, store, err
	}

	return &cli.Services{
		Sync:      services.NewSyncOrchestrator(registry, mappers),
		Settings:  settings,
		Documents: documentOpener(cfg),
	}, store, nil
}

// documentOpener resolves document paths against the configured layout.
// An explicit path that is an existing directory is read as a split document.
// Only imports expand placeholders, so a targeted export rewrites the
// untouched categories with their placeholders intact.
func documentOpener(cfg domain.Config) cli.DocumentOpener {
	return openDocumentOn(osfs.New(string(filepath.Separator)), cfg)
}

func openDocumentOn(fs billy.Filesystem, cfg domain.Config) cli.DocumentOpener {
	raw := document.NewYAMLCodec(nil)
	expanded := document.NewYAMLCodec(document.NewExpander())

	return func(path string, forImport bool) (driven.DocumentStore, error) {
		codec := raw
		if forImport {
			codec = expanded
		}

		split := cfg.Document.Split
		if path == "" {
			path = cfg.Document.Path
		} else {
			info, err := fs.Stat(absPath(path))
			split = err == nil && info.IsDir()
		}

		abs := absPath(path)

		var store driven.DocumentStore
		if split {
			store = document.NewDirStore(fs, abs, codec)
		} else {
			store = document.NewFileStore(fs, abs, codec)
		}

		if !forImport || cfg.Document.OverridePath == "" {
			return store, nil
		}
		overrides := document.NewFileStore(fs, absPath(cfg.Document.OverridePath), codec)
		return document.NewOverrideStore(store, overrides), nil
	}
}

// absPath makes path absolute against the working directory. Paths that
// cannot be resolved are used as given.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
