// Package cli implements the GuideVault command-line interface. Commands
// talk to the core through the driving ports; wiring happens once in
// Execute so tests can swap the package-level services for mocks.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gfarchive/guidevault/internal/adapters/driven/archive"
	configfile "github.com/gfarchive/guidevault/internal/adapters/driven/config/file"
	"github.com/gfarchive/guidevault/internal/adapters/driven/download"
	"github.com/gfarchive/guidevault/internal/adapters/driven/storage/sqlite"
	"github.com/gfarchive/guidevault/internal/core/ports/driving"
	"github.com/gfarchive/guidevault/internal/core/services"
	"github.com/gfarchive/guidevault/internal/logger"
	"github.com/gfarchive/guidevault/internal/parsers"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services the commands run against. Execute wires them from the real
// adapters; tests assign mocks directly.
var (
	store            *sqlite.Store
	bootstrapService driving.Bootstrapper
	libraryService   driving.LibraryService
	searchService    driving.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "guidevault",
	Short: "Offline game guide library",
	Long: `GuideVault maintains a local, searchable library of game guides.
The first run downloads and imports the guide archive; after that every
command works entirely offline.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.guidevault)")
}

// Execute wires the real adapters and runs the CLI.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()
	return rootCmd.Execute()
}

// initServices builds the adapter stack and the core services on top of
// it. Already-assigned services (tests) are left alone.
func initServices() error {
	if bootstrapService != nil && libraryService != nil && searchService != nil {
		return nil
	}

	cfg, err := configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening library: %w", err)
	}

	guides := store.GuideStore()
	importer := services.NewImporter(store.BatchStore(), store.GameStore(), parsers.NewRegistry(), cfg.ImportBatchSize)
	bootstrapService = services.NewBootstrap(
		download.New(nil), archive.New(), importer, guides, cfg.ArchiveURL, cfg.WorkDir)
	libraryService = services.NewLibrary(guides, store.GameStore(), store.BookmarkStore(), store.NoteStore())
	searchService = services.NewSearch(store.SearchIndex())
	return nil
}
