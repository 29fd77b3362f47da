// Command noterag indexes a directory of per-user notes and answers
// questions grounded in them.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/noterag-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/noterag-cli/internal/adapters/driven/config/file"
	pagesfile "github.com/custodia-labs/noterag-cli/internal/adapters/driven/pages/file"
	"github.com/custodia-labs/noterag-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/noterag-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/noterag-cli/internal/chunker"
	"github.com/custodia-labs/noterag-cli/internal/core/services"
	"github.com/custodia-labs/noterag-cli/internal/normalisers"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Configuration. A missing config file is fine; defaults apply.
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	// Driven adapters.
	store, err := sqlite.NewStore(configStore.GetString("data.dir"))
	if err != nil {
		return fmt.Errorf("initialising storage: %w", err)
	}
	defer store.Close()

	pageStore, err := pagesfile.NewPageStore(configStore.GetString("pages.dir"))
	if err != nil {
		return fmt.Errorf("initialising page store: %w", err)
	}

	var aiOpts []ai.FactoryOption
	if url := configStore.GetString("ai.base_url"); url != "" {
		aiOpts = append(aiOpts, ai.WithBaseURL(url))
	}
	if model := configStore.GetString("index.embedding_model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if model := configStore.GetString("ai.llm_model"); model != "" {
		aiOpts = append(aiOpts, ai.WithLLMModel(model))
	}
	if dims := configStore.GetInt("index.dimensions"); dims > 0 {
		aiOpts = append(aiOpts, ai.WithDimensions(dims))
	}
	aiFactory := ai.NewFactory(aiOpts...)

	var splitterOpts []chunker.Option
	if size := configStore.GetInt("index.chunk_size"); size > 0 {
		splitterOpts = append(splitterOpts, chunker.WithChunkSize(size))
	}
	if overlap := configStore.GetInt("index.chunk_overlap"); overlap > 0 {
		splitterOpts = append(splitterOpts, chunker.WithOverlap(overlap))
	}
	splitter := chunker.New(splitterOpts...)

	// Core services.
	builder := services.NewBuildOrchestrator(
		pageStore,
		store.SettingsStore(),
		aiFactory,
		normalisers.New(),
		splitter,
		store.IndexStore(),
		store.StatusSink(),
	)

	var ragOpts []services.RagOption
	if topK := configStore.GetInt("index.top_k"); topK > 0 {
		ragOpts = append(ragOpts, services.WithTopK(topK))
	}
	rag := services.NewRagService(store.SettingsStore(), aiFactory, store.IndexStore(), ragOpts...)

	// Driving adapter.
	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		IndexBuilder:  builder,
		AskService:    rag,
		SettingsStore: store.SettingsStore(),
		StatusStore:   store.StatusSink(),
		IndexStore:    store.IndexStore(),
		ConfigStore:   configStore,
		KeyValidator:  aiFactory,
		PagesRoot:     pageStore.Root(),
	})

	return cli.Execute()
}
