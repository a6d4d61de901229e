// Package cli provides the lakeview command-line interface.
package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tidewater-labs/lakeview-cli/internal/adapters/driven/config/file"
	"github.com/tidewater-labs/lakeview-cli/internal/adapters/driven/contentstore/lake"
	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
	"github.com/tidewater-labs/lakeview-cli/internal/core/services"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
	"github.com/tidewater-labs/lakeview-cli/internal/postprocessors/chunker"
)

var (
	version     = "dev"
	verboseFlag bool

	configStore *file.ConfigStore
)

// serviceSet bundles the driving services built from one settings
// snapshot. Rebuilt wholesale on config reload.
type serviceSet struct {
	document driving.DocumentService
	search   driving.SearchService
	context  driving.ContextService
	catalog  driving.CatalogService
	schema   driving.SchemaService
}

var (
	servicesMu sync.RWMutex
	current    serviceSet
)

func currentServices() serviceSet {
	servicesMu.RLock()
	defer servicesMu.RUnlock()
	return current
}

var rootCmd = &cobra.Command{
	Use:   "lakeview",
	Short: "Search, read and publish content-lake documents",
	Long: `Lakeview turns a hosted content lake into context for AI assistants.

It searches and flattens schema-less documents, assembles ranked,
size-bounded context blocks, and exposes the whole surface as MCP
tools. Run 'lakeview settings' to connect a dataset.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

// Execute runs the root command with the build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// initServices wires the full service stack before any command runs.
// The stack is built even when no connection is configured; operations
// then fail with a clear not-configured message instead of a panic.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		configStore = store
	}

	if currentServices().document == nil {
		rebuildServices(configStore.Settings())
	}
	return nil
}

// rebuildServices replaces the service set from a settings snapshot.
// Called at startup and again on config hot-reload.
func rebuildServices(settings domain.Settings) {
	client := lake.NewClient(lake.Config{
		Endpoint:   settings.Connection.Endpoint,
		Dataset:    settings.Connection.Dataset,
		Token:      settings.Connection.Token,
		APIVersion: settings.Connection.APIVersion,
	})
	store := lake.New(client)

	proc := chunker.New(chunker.WithChunkSize(settings.Defaults.ChunkSize))
	schema := services.NewSchemaService(store)

	next := serviceSet{
		document: services.NewDocumentService(store, schema),
		search:   services.NewSearchService(store),
		context: services.NewContextService(store, proc,
			services.WithDefaultMaxResults(settings.Defaults.MaxResults)),
		catalog: services.NewCatalogService(store,
			services.WithDefaultKinds(settings.Defaults.Kinds)),
		schema: schema,
	}

	servicesMu.Lock()
	current = next
	servicesMu.Unlock()
}
