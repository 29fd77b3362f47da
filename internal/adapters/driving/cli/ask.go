package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <user> <question>",
	Short: "Ask a question about your notes",
	Long: `Answers a natural-language question grounded in the user's indexed
notes. The question is embedded, the closest chunks are retrieved from
the stored index and an answer is generated from them, with the source
pages cited.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	userID := args[0]
	question := args[1]

	ctx := context.Background()

	answer, err := askService.Ask(ctx, userID, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Text)

	if len(answer.Matches) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for i, m := range answer.Matches {
		cmd.Printf("  [%d] %s (chunk %d, %.2f)\n", i+1, m.PageName, m.ChunkIndex, m.Score)
	}

	return nil
}
