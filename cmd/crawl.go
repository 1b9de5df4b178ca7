package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/msads/advisor/internal/config"
	"github.com/msads/advisor/internal/crawl"
)

// runCrawl fetches the program pages into the corpus directory. It needs no
// database or model access, so it skips app setup entirely.
func runCrawl() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	crawler := crawl.NewCrawler(crawl.Config{
		StartURL:      cfg.CrawlStartURL,
		AllowedDomain: cfg.CrawlAllowedDomain,
		MaxDepth:      cfg.CrawlMaxDepth,
		Delay:         time.Duration(cfg.CrawlDelayMs) * time.Millisecond,
		OutDir:        cfg.CorpusDir,
	}, slog.Default())

	result, err := crawler.Run()
	if err != nil {
		return fmt.Errorf("crawling program pages: %w", err)
	}

	fmt.Printf("Saved %d pages (%d failed) in %s\n",
		result.PagesSaved, result.PagesFailed, result.Duration)
	fmt.Printf("Run 'advisor index' to embed them into the vector store\n")
	return nil
}
