package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check [user]",
	Short: "Check the configuration",
	Long: `Verifies that noterag is ready to use: the config file, the notes
directory and the index store. With a user argument it also checks that
the user has a working API key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	failures := 0

	// Config file.
	if configStore == nil {
		checkFail(cmd, "config store not configured")
		failures++
	} else if _, err := os.Stat(configStore.Path()); err != nil {
		checkWarn(cmd, fmt.Sprintf("config file missing: %s (defaults apply)", configStore.Path()))
	} else {
		checkOK(cmd, fmt.Sprintf("config file: %s", configStore.Path()))
	}

	// Notes directory.
	if pagesRoot == "" {
		checkFail(cmd, "notes directory not configured")
		failures++
	} else if info, err := os.Stat(pagesRoot); err != nil || !info.IsDir() {
		checkFail(cmd, fmt.Sprintf("notes directory missing: %s", pagesRoot))
		failures++
	} else {
		checkOK(cmd, fmt.Sprintf("notes directory: %s", pagesRoot))
	}

	// Index store reachability.
	if indexStore == nil {
		checkFail(cmd, "index store not configured")
		failures++
	} else if _, err := indexStore.Exists(ctx, "_check"); err != nil {
		checkFail(cmd, fmt.Sprintf("index store unreachable: %v", err))
		failures++
	} else {
		checkOK(cmd, "index store reachable")
	}

	// Per-user checks.
	if len(args) > 0 {
		failures += checkUser(ctx, cmd, args[0])
	}

	cmd.Println()
	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	cmd.Println("All checks passed.")
	return nil
}

func checkUser(ctx context.Context, cmd *cobra.Command, userID string) int {
	if settingsStore == nil {
		checkFail(cmd, "settings store not configured")
		return 1
	}

	settings, err := settingsStore.GetAISettings(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && settings.APIKey == "") {
		checkFail(cmd, fmt.Sprintf("no API key for user %s (run 'noterag settings set-key %s')", userID, userID))
		return 1
	}
	if err != nil {
		checkFail(cmd, fmt.Sprintf("failed to read settings for %s: %v", userID, err))
		return 1
	}
	checkOK(cmd, fmt.Sprintf("API key present for %s", userID))

	if keyValidator == nil {
		return 0
	}
	if err := keyValidator.ValidateKey(ctx, settings.APIKey); err != nil {
		checkFail(cmd, fmt.Sprintf("API key rejected for %s: %v", userID, err))
		return 1
	}
	checkOK(cmd, fmt.Sprintf("API key accepted for %s", userID))
	return 0
}

func checkOK(cmd *cobra.Command, msg string) {
	cmd.Printf("  [ok]   %s\n", msg)
}

func checkWarn(cmd *cobra.Command, msg string) {
	cmd.Printf("  [warn] %s\n", msg)
}

func checkFail(cmd *cobra.Command, msg string) {
	cmd.Printf("  [fail] %s\n", msg)
}
