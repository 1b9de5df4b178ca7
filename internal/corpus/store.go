// Package corpus manages the fixed document corpus and its vector index.
//
// Passages are embedded on write with an ai.Embedder and stored in
// PostgreSQL + pgvector; Search embeds the query and runs a cosine-distance
// nearest-neighbour lookup. The corpus is append-only during indexing and
// read-only while serving questions; the Store is safe for concurrent use.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/pgvector/pgvector-go"
)

// searchTimeout bounds a single embedding + vector lookup so one slow query
// cannot hold a request open indefinitely.
const searchTimeout = 10 * time.Second

// Store provides embedding-on-write persistence and similarity search over
// the passage corpus.
type Store struct {
	queries  Querier
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewStore creates a Store.
// logger may be nil, in which case slog.Default() is used.
func NewStore(queries Querier, embedder ai.Embedder, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		queries:  queries,
		embedder: embedder,
		logger:   logger,
	}
}

// Add embeds doc.Content and upserts the passage row.
func (s *Store) Add(ctx context.Context, doc Document) error {
	embedding, err := s.embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("embedding passage %q: %w", doc.ID, err)
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if err := s.queries.UpsertPassage(ctx, UpsertPassageParams{
		ID:        doc.ID,
		Content:   doc.Content,
		SourceID:  doc.SourceID,
		Embedding: embedding,
		CreatedAt: createdAt,
	}); err != nil {
		return fmt.Errorf("storing passage %q: %w", doc.ID, err)
	}

	s.logger.Debug("added passage", "id", doc.ID, "source", doc.SourceID, "content_length", len(doc.Content))
	return nil
}

// Search returns the topK most similar passages to query, descending by
// similarity. An empty corpus yields an empty slice, not an error.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	queryCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	embedding, err := s.embed(queryCtx, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("query embedding timeout: %w", err)
		}
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.queries.SearchPassages(queryCtx, embedding, int32(topK)) // #nosec G115 -- topK validated positive and small
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("search query timeout: %w", err)
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	matches := make([]Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, Match{
			Document: Document{
				ID:        row.ID,
				Content:   row.Content,
				SourceID:  row.SourceID,
				CreatedAt: row.CreatedAt,
			},
			Similarity: row.Similarity,
		})
	}
	return matches, nil
}

// Count returns the number of stored passages.
func (s *Store) Count(ctx context.Context) (int64, error) {
	count, err := s.queries.CountPassages(ctx)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return count, nil
}

// embed generates a single embedding vector for text.
func (s *Store) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := s.embedder.Embed(ctx, &ai.EmbedRequest{
		Input: []*ai.Document{ai.DocumentFromText(text, nil)},
	})
	if err != nil {
		return pgvector.Vector{}, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return pgvector.Vector{}, errors.New("embedder returned no embedding")
	}
	return pgvector.NewVector(resp.Embeddings[0].Embedding), nil
}
