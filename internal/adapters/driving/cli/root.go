package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/mathtrail/mathtrail-cli/internal/adapters/driven/config/file"
	contentfile "github.com/mathtrail/mathtrail-cli/internal/adapters/driven/content/file"
	"github.com/mathtrail/mathtrail-cli/internal/adapters/driven/storage/sqlite"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driving"
	"github.com/mathtrail/mathtrail-cli/internal/core/services"
	"github.com/mathtrail/mathtrail-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by Execute; tests swap these for mocks.
var (
	theoryService   driving.TheoryService
	resolverService driving.ResolverService
	graphService    driving.GraphService
	configStore     driven.ConfigStore
	contentWatcher  driven.ContentWatcher
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mathtrail",
	Short: "Math document corpus tool",
	Long: `Mathtrail manages a corpus of mathematical theory documents.

Load theory content files into a local index, resolve symbolic
references against the loaded corpus, and build definition
dependency graphs.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute wires the adapters into the core services and runs the root
// command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

// initServices builds the default production wiring: TOML config,
// file-based content source, SQLite-backed content store.
func initServices() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return err
	}
	configStore = cfg

	source, err := contentfile.NewSource(cfg.GetString("content.dir"))
	if err != nil {
		return err
	}
	contentWatcher = contentfile.NewWatcher(source.Dir())

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return err
	}

	resolver, err := services.NewResolver(store, cfg.GetInt("resolver.cache_size"))
	if err != nil {
		return err
	}
	resolverService = resolver

	loader := services.NewTheoryLoader(source, store)
	loader.OnReplace(resolver.InvalidateTheory)
	theoryService = loader

	graphService = services.NewGraphBuilder(store)
	return nil
}

// defaultTheory reads the configured fallback theory.
func defaultTheory() string {
	if configStore == nil {
		return ""
	}
	return configStore.GetString("theory.default")
}
