package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// recentStepLimit caps how many build steps the status command shows.
const recentStepLimit = 5

var statusCmd = &cobra.Command{
	Use:   "status <user>",
	Short: "Show the user's index status",
	Long: `Shows the state of a user's index: whether one exists, when it was
last built and how much it holds.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusStore == nil || indexStore == nil {
		return errors.New("status service not configured")
	}

	userID := args[0]
	ctx := context.Background()

	status, err := statusStore.GetIndexStatus(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No index for user %s. Run 'noterag build %s' to create one.\n", userID, userID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}

	cmd.Printf("Index status for %s\n", userID)
	cmd.Println("===================")
	cmd.Printf("  Status:       %s\n", status.Status)
	cmd.Printf("  Enabled:      %t\n", status.Enabled)
	cmd.Printf("  Pages:        %d\n", status.TotalPages)
	cmd.Printf("  Chunks:       %d\n", status.TotalChunks)
	if !status.LastUpdated.IsZero() {
		cmd.Printf("  Last updated: %s\n", status.LastUpdated.Format("2006-01-02 15:04:05"))
	}

	// Metadata is written by the build itself; status is best-effort,
	// so show both when they exist.
	if meta, err := indexStore.Metadata(ctx, userID); err == nil {
		cmd.Println()
		cmd.Printf("  Model:         %s\n", meta.EmbeddingModel)
		cmd.Printf("  Chunk size:    %d\n", meta.ChunkSize)
		cmd.Printf("  Chunk overlap: %d\n", meta.ChunkOverlap)
		if !meta.CreatedAt.IsZero() {
			cmd.Printf("  First built:   %s\n", meta.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}

	steps, err := statusStore.RecentSteps(ctx, userID, recentStepLimit)
	if err != nil || len(steps) == 0 {
		return nil
	}
	cmd.Println()
	cmd.Println("  Recent steps:")
	for _, step := range steps {
		cmd.Printf("    %s  %s\n", step.Timestamp.Format("2006-01-02 15:04:05"), step.Step)
	}

	return nil
}
