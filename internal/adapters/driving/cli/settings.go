package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage per-user AI settings",
	Long: `View and configure per-user AI settings.

Each user has their own API key for the AI provider; it authenticates
both embedding and answer generation.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show the user's AI settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsShow,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key <user>",
	Short: "Set the user's API key",
	Long: `Stores the user's API key for the AI provider.

The key is read from stdin without echo and validated against the
provider before it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings service not configured")
	}

	userID := args[0]
	ctx := context.Background()

	settings, err := settingsStore.GetAISettings(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No settings for user %s. Run 'noterag settings set-key %s' first.\n", userID, userID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Printf("Settings for %s\n", userID)
	cmd.Println("================")
	if settings.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	if !settings.UpdatedAt.IsZero() {
		cmd.Printf("  Updated: %s\n", settings.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings service not configured")
	}

	userID := args[0]
	ctx := context.Background()

	cmd.Print("API key: ")
	key := promptSecret()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	if keyValidator != nil {
		cmd.Println("Validating key...")
		if err := keyValidator.ValidateKey(ctx, key); err != nil {
			return fmt.Errorf("key rejected by provider: %w", err)
		}
	}

	err := settingsStore.SaveAISettings(ctx, domain.AISettings{
		UserID:    userID,
		APIKey:    key,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("API key saved for user %s.\n", userID)
	return nil
}

// promptSecret reads a line from stdin without echo when attached to a
// terminal.
func promptSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
