// Package cmd provides the CLI commands for the advisor.
//
// Commands:
//   - ask: answer one question from the command line
//   - serve: HTTP API server
//   - crawl: fetch the program pages into the corpus directory
//   - index: embed the corpus files into the vector store
//
// Signal handling and graceful shutdown are implemented for long-running
// commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/msads/advisor/internal/log"
)

// Execute is the main entry point for the advisor CLI.
func Execute() error {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(log.New(log.Config{Level: level}))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "ask":
		return runAsk(os.Args[2:])
	case "serve":
		return runServe()
	case "crawl":
		return runCrawl()
	case "index":
		return runIndex()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("advisor - Q&A assistant for the MS in Applied Data Science program")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  advisor ask <question>   Answer one question")
	fmt.Println("  advisor serve [addr]     Start HTTP API server (default: 127.0.0.1:3400)")
	fmt.Println("  advisor crawl            Fetch program pages into the corpus directory")
	fmt.Println("  advisor index            Embed corpus files into the vector store")
	fmt.Println("  advisor --version        Show version information")
	fmt.Println("  advisor --help           Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY     Required: Gemini API key")
	fmt.Println("  DATABASE_URL       Optional: PostgreSQL connection URL")
	fmt.Println("  DEBUG              Optional: Enable debug logging")
}
