package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoadResult summarizes a corpus ingestion run.
type LoadResult struct {
	FilesAdded   int
	FilesSkipped int
	FilesFailed  int
	Duration     time.Duration
}

// LoaderStore is the subset of Store the Loader needs.
type LoaderStore interface {
	Add(ctx context.Context, doc Document) error
}

// Loader ingests the crawled text corpus (a directory of .txt files, one per
// source page) into the vector index. The filename is kept as the passage's
// SourceID so answers can cite where their evidence came from.
type Loader struct {
	store  LoaderStore
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(store LoaderStore, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, logger: logger}
}

// LoadDir indexes every non-empty .txt file directly under dir.
// Files that fail to read or embed are counted and skipped; the run only
// fails as a whole when the directory itself is unreadable or every file
// failed.
func (l *Loader) LoadDir(ctx context.Context, dir string) (LoadResult, error) {
	start := time.Now()
	var res LoadResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		return res, fmt.Errorf("reading corpus directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			res.FilesSkipped++
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured corpus dir
		if err != nil {
			l.logger.Warn("failed to read corpus file", "path", path, "error", err)
			res.FilesFailed++
			continue
		}

		text := strings.TrimSpace(string(content))
		if text == "" {
			res.FilesSkipped++
			continue
		}

		doc := Document{
			ID:       fileDocID(entry.Name()),
			Content:  text,
			SourceID: entry.Name(),
		}
		if err := l.store.Add(ctx, doc); err != nil {
			l.logger.Warn("failed to index corpus file", "path", path, "error", err)
			res.FilesFailed++
			continue
		}
		res.FilesAdded++
	}

	res.Duration = time.Since(start)
	l.logger.Info("corpus load finished",
		"added", res.FilesAdded,
		"skipped", res.FilesSkipped,
		"failed", res.FilesFailed,
		"duration", res.Duration)

	if res.FilesAdded == 0 && res.FilesFailed > 0 {
		return res, fmt.Errorf("failed to index any corpus file in %q", dir)
	}
	return res, nil
}

// fileDocID derives a stable passage ID from the corpus filename, so
// re-running the loader updates rows instead of duplicating them.
func fileDocID(name string) string {
	sum := sha256.Sum256([]byte(name))
	return "file:" + hex.EncodeToString(sum[:8])
}
