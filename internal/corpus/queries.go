package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Querier defines the database operations the Store needs. The interface is
// defined here, by the consumer, so tests can substitute a mock and the
// Store never depends on a concrete driver.
type Querier interface {
	// UpsertPassage inserts or replaces a passage row.
	UpsertPassage(ctx context.Context, arg UpsertPassageParams) error

	// SearchPassages returns the nearest passages to the query embedding,
	// ordered by ascending cosine distance.
	SearchPassages(ctx context.Context, embedding pgvector.Vector, limit int32) ([]SearchPassagesRow, error)

	// CountPassages counts all stored passages.
	CountPassages(ctx context.Context) (int64, error)
}

// UpsertPassageParams carries one passage row for UpsertPassage.
type UpsertPassageParams struct {
	ID        string
	Content   string
	SourceID  string
	Embedding pgvector.Vector
	CreatedAt time.Time
}

// SearchPassagesRow is one similarity-search result row.
type SearchPassagesRow struct {
	ID         string
	Content    string
	SourceID   string
	CreatedAt  time.Time
	Similarity float64
}

// PGXQuerier implements Querier over a pgx connection pool.
// The pool must have pgvector types registered (see app setup).
type PGXQuerier struct {
	pool *pgxpool.Pool
}

// NewPGXQuerier creates a Querier backed by the given pool.
func NewPGXQuerier(pool *pgxpool.Pool) *PGXQuerier {
	return &PGXQuerier{pool: pool}
}

func (q *PGXQuerier) UpsertPassage(ctx context.Context, arg UpsertPassageParams) error {
	const query = `
		INSERT INTO passages (id, content, source_id, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content,
		    source_id = EXCLUDED.source_id,
		    embedding = EXCLUDED.embedding,
		    created_at = EXCLUDED.created_at`

	_, err := q.pool.Exec(ctx, query, arg.ID, arg.Content, arg.SourceID, arg.Embedding, arg.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting passage: %w", err)
	}
	return nil
}

func (q *PGXQuerier) SearchPassages(ctx context.Context, embedding pgvector.Vector, limit int32) ([]SearchPassagesRow, error) {
	// <=> is cosine distance; similarity = 1 - distance.
	const query = `
		SELECT id, content, source_id, created_at, 1 - (embedding <=> $1) AS similarity
		FROM passages
		ORDER BY embedding <=> $1
		LIMIT $2`

	rows, err := q.pool.Query(ctx, query, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching passages: %w", err)
	}
	defer rows.Close()

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SearchPassagesRow, error) {
		var r SearchPassagesRow
		err := row.Scan(&r.ID, &r.Content, &r.SourceID, &r.CreatedAt, &r.Similarity)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning passages: %w", err)
	}
	return results, nil
}

func (q *PGXQuerier) CountPassages(ctx context.Context) (int64, error) {
	var count int64
	if err := q.pool.QueryRow(ctx, `SELECT count(*) FROM passages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting passages: %w", err)
	}
	return count, nil
}
