package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoInformationAdvisory is returned when the guardrail would pass but no
// passage survived the pipeline, so the generator has nothing to stand on.
const NoInformationAdvisory = "No information on this topic was found in the official program pages."

// Request carries one question through the pipeline.
type Request struct {
	// Question is the raw user question.
	Question string

	// Today is the reference date for the temporal filter.
	// Zero means time.Now().
	Today time.Time

	// RetrieveK is the first-stage retrieval depth.
	RetrieveK int

	// RerankK is the number of passages kept after reranking.
	RerankK int
}

// Pipeline wires the four stages into a single synchronous call chain. All
// dependencies are read-only after construction; Run keeps no state on the
// struct, so concurrent invocations are independent.
type Pipeline struct {
	retriever *Retriever
	temporal  TemporalFilter
	reranker  *Reranker
	guardrail *Guardrail
	logger    *slog.Logger
}

// New creates a Pipeline from its stages.
func New(retriever *Retriever, reranker *Reranker, guardrail *Guardrail, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		retriever: retriever,
		reranker:  reranker,
		guardrail: guardrail,
		logger:    logger,
	}
}

// Run executes the stages strictly in sequence. The passage count can only
// shrink from stage to stage. Errors from the retriever and reranker are
// fatal to the request and returned as-is for the caller to surface; no
// stage retries anything.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if req.Question == "" {
		return Result{}, fmt.Errorf("question must not be empty")
	}
	today := req.Today
	if today.IsZero() {
		today = time.Now()
	}

	query := NewQuery(req.Question)

	candidates, err := p.retriever.Retrieve(ctx, query.Raw, req.RetrieveK)
	if err != nil {
		return Result{}, err
	}

	current := p.temporal.Filter(candidates, today)

	ranked, err := p.reranker.Rerank(ctx, query.Raw, current, req.RerankK)
	if err != nil {
		return Result{}, err
	}

	verdict := p.guardrail.Classify(query, ranked)

	result := Assemble(ranked, verdict)
	if result.Verdict.Kind == VerdictPass && len(result.Sources) == 0 {
		result.Verdict.Advisory = NoInformationAdvisory
	}

	p.logger.Debug("pipeline finished",
		"retrieved", len(candidates),
		"after_temporal", len(current),
		"after_rerank", len(ranked),
		"verdict", verdict.Kind.String())

	return result, nil
}
