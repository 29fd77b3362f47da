package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/noterag-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat <user>",
	Short: "Start an interactive chat over your notes",
	Long: `Launches an interactive chat session for the user. Each question is
answered from the user's indexed notes with sources cited.

Controls:
  Enter - Ask
  ↑/↓   - Scroll history
  Esc   - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	app, err := tui.NewApp(askService, args[0])
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}

	program := tea.NewProgram(app.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	return nil
}
