package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/msads/advisor/internal/app"
	"github.com/msads/advisor/internal/config"
	"github.com/msads/advisor/internal/corpus"
)

// runIndex embeds every corpus file into the vector store. Re-running it
// re-embeds changed files in place; document IDs are stable per file name.
func runIndex() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.Default()
	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	loader := corpus.NewLoader(a.Corpus, logger)
	result, err := loader.LoadDir(ctx, cfg.CorpusDir)
	if err != nil {
		return fmt.Errorf("indexing corpus: %w", err)
	}

	fmt.Printf("Indexed %d files (%d skipped, %d failed) in %s\n",
		result.FilesAdded, result.FilesSkipped, result.FilesFailed, result.Duration)

	total, err := a.Corpus.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting passages: %w", err)
	}
	fmt.Printf("Vector store now holds %d passages\n", total)
	return nil
}
