// Package cli implements the cobra command surface for the noterag
// binary. Commands talk to the core exclusively through the driving
// ports; services are injected by the cmd wiring via SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driving"
	"github.com/custodia-labs/noterag-cli/internal/logger"
)

// version is set from the cmd wiring at startup.
var version = "dev"

// KeyValidator checks an API key against the provider before it is
// stored. Implemented by the AI factory.
type KeyValidator interface {
	ValidateKey(ctx context.Context, apiKey string) error
}

// Injected services. Nil until SetServices is called; commands guard
// against missing services so partial wiring fails with a clear error
// instead of a panic.
var (
	indexBuilder  driving.IndexBuilder
	askService    driving.AskService
	settingsStore driven.SettingsStore
	statusStore   driven.StatusSink
	indexStore    driven.IndexStore
	configStore   driven.ConfigStore
	keyValidator  KeyValidator
	pagesRoot     string
)

// Services bundles everything the commands need.
type Services struct {
	IndexBuilder  driving.IndexBuilder
	AskService    driving.AskService
	SettingsStore driven.SettingsStore
	StatusStore   driven.StatusSink
	IndexStore    driven.IndexStore
	ConfigStore   driven.ConfigStore
	KeyValidator  KeyValidator

	// PagesRoot is the notes directory, reported by check.
	PagesRoot string
}

// SetServices injects the wired services into the command package.
func SetServices(s Services) {
	indexBuilder = s.IndexBuilder
	askService = s.AskService
	settingsStore = s.SettingsStore
	statusStore = s.StatusStore
	indexStore = s.IndexStore
	configStore = s.ConfigStore
	keyValidator = s.KeyValidator
	pagesRoot = s.PagesRoot
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "noterag",
	Short: "Index and query your notes with retrieval-augmented answers",
	Long: `Noterag builds a per-user vector index over a directory of notes and
answers natural-language questions grounded in them.

Point it at your notes, set an API key, build the index, then ask:

  noterag settings set-key alice
  noterag build alice
  noterag ask alice "what did I decide about the garden?"`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
