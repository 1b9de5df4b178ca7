package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// Scorer scores (query, text) pairs with a cross-encoder model. It returns
// one score per input text, in input order. A pair the model could not score
// is reported as NaN rather than failing the batch; a nil error with a
// mismatched length is a protocol violation.
//
// rerank.Client implements Scorer over HTTP.
type Scorer interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Reranker is the second-pass, higher-precision relevance stage. The
// first-stage vector lookup is a cheap recall mechanism; the cross-encoder
// corrects its ranking errors, so it sees every temporal-filter survivor,
// not just the final top-K.
type Reranker struct {
	scorer Scorer
	logger *slog.Logger
}

// NewReranker creates a Reranker over the given scorer.
func NewReranker(scorer Scorer, logger *slog.Logger) *Reranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reranker{scorer: scorer, logger: logger}
}

// Rerank scores every passage against query, sorts descending by score, and
// truncates to topK. The sort is stable: equal scores keep their relative
// input order. Fewer than topK passages come back as-is, sorted; an empty
// input returns empty without calling the scorer.
//
// A passage whose pair could not be scored (NaN from the Scorer) is floored
// to -Inf so one bad passage cannot blank the whole answer; a failure of the
// batch call itself is ErrRerankerUnavailable.
func (r *Reranker) Rerank(ctx context.Context, query string, passages []Passage, topK int) ([]Passage, error) {
	if len(passages) == 0 {
		return []Passage{}, nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Content
	}

	scores, err := r.scorer.Score(ctx, query, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRerankerUnavailable, err)
	}
	if len(scores) != len(passages) {
		return nil, fmt.Errorf("%w: got %d scores for %d passages",
			ErrRerankerUnavailable, len(scores), len(passages))
	}

	scored := make([]Passage, len(passages))
	for i, p := range passages {
		score := scores[i]
		if math.IsNaN(score) {
			r.logger.Debug("pair scoring failed, flooring score", "source", p.SourceID)
			score = math.Inf(-1)
		}
		p.Score = score
		scored[i] = p
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK < 0 {
		topK = 0
	}
	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}
