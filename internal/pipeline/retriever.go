package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msads/advisor/internal/corpus"
)

// Searcher is the similarity-search capability the Retriever consumes.
// corpus.Store satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]corpus.Match, error)
}

// Retriever is the first pipeline stage: cheap, high-recall candidate
// selection by vector similarity.
type Retriever struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewRetriever creates a Retriever over the given searcher.
func NewRetriever(searcher Searcher, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{searcher: searcher, logger: logger}
}

// Retrieve returns up to k passages in descending similarity order, with
// Score set to the similarity. An empty index yields an empty slice and no
// error; any search failure is reported as ErrIndexUnavailable.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	if k < 1 {
		return nil, fmt.Errorf("retrieve k must be positive, got %d", k)
	}

	matches, err := r.searcher.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	passages := make([]Passage, 0, len(matches))
	for _, m := range matches {
		passages = append(passages, Passage{
			Content:  m.Document.Content,
			SourceID: m.Document.SourceID,
			Score:    m.Similarity,
		})
	}

	r.logger.Debug("retrieved candidates", "requested", k, "returned", len(passages))
	return passages, nil
}
