package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driving"
)

var buildCmd = &cobra.Command{
	Use:   "build <user>",
	Short: "Build the user's note index",
	Long: `Rebuilds the vector index for a user from scratch.

All of the user's pages are loaded, normalised, chunked, embedded and
stored, replacing any previous index. Requires an API key configured via
'noterag settings set-key'.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if indexBuilder == nil {
		return errors.New("build service not configured")
	}

	userID := args[0]
	ctx := context.Background()

	cmd.Printf("Building index for user: %s...\n", userID)

	summary, err := buildWithProgress(ctx, cmd, indexBuilder, userID)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Println("Index built successfully.")
	cmd.Println()
	cmd.Printf("  Pages found:     %d\n", summary.PagesFound)
	cmd.Printf("  Pages indexed:   %d\n", summary.PagesIndexed)
	if summary.PagesEmpty > 0 {
		cmd.Printf("  Pages empty:     %d\n", summary.PagesEmpty)
	}
	cmd.Printf("  Chunks created:  %d\n", summary.ChunksCreated)
	if summary.ChunksDegraded > 0 {
		cmd.Printf("  Chunks degraded: %d (stored without embeddings)\n", summary.ChunksDegraded)
	}

	return nil
}

// buildWithProgress runs the build while displaying progress updates.
func buildWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	builder driving.IndexBuilder,
	userID string,
) (*driving.BuildSummary, error) {
	type result struct {
		summary *driving.BuildSummary
		err     error
	}

	// Start build in goroutine
	resCh := make(chan result, 1)
	go func() {
		summary, err := builder.Build(ctx, userID)
		resCh <- result{summary, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	printed := false
	lastCount := -1
	for {
		select {
		case res := <-resCh:
			if printed {
				cmd.Println()
			}
			return res.summary, res.err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := builder.Status(ctx, userID)
			if statusErr != nil || status == nil || !status.Running {
				continue
			}
			if status.ChunksTotal > 0 && status.ChunksEmbedded > lastCount {
				cmd.Printf("\rEmbedding... %d/%d chunks", status.ChunksEmbedded, status.ChunksTotal)
				lastCount = status.ChunksEmbedded
				printed = true
			} else if status.Step != "" && lastCount < 0 {
				cmd.Printf("\r%s...", status.Step)
				printed = true
			}
		}
	}
}
