package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/msads/advisor/internal/app"
	"github.com/msads/advisor/internal/config"
)

// runAsk answers a single question and prints the result.
func runAsk(args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("usage: advisor ask <question>")
	}

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

	answer, err := a.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if answer.Text != "" {
		fmt.Println(answer.Text)
	}
	if answer.Advisory != "" {
		fmt.Println()
		fmt.Println(answer.Advisory)
	}
	if len(answer.Sources) > 0 {
		fmt.Println()
		fmt.Println("Sources:")
		for _, src := range answer.Sources {
			fmt.Printf("  - %s\n", src)
		}
	}
	return nil
}
