// Package pipeline assembles a bounded, trustworthy context block for answer
// generation from a user question and the passage corpus.
//
// # Stages
//
// A question flows through four stages, strictly in order, each consuming the
// previous stage's output:
//
//	Retriever → TemporalFilter → Reranker → Guardrail → Assemble
//
//   - Retriever: first-stage recall by vector similarity over the corpus.
//   - TemporalFilter: drops passages mentioning calendar dates that have
//     already elapsed, so a stale deadline is never surfaced as current.
//   - Reranker: cross-encoder rescoring of all survivors, keeping the top-K
//     by relevance.
//   - Guardrail: keyword classification of the question against sensitive
//     categories (deadlines, tuition, requirements), deciding pass, warn, or
//     abstain.
//   - Assemble: joins the surviving passages into the final context string
//     with parallel source identifiers for citation.
//
// No stage may grow the passage set, and no stage reorders passages it did
// not also rescore. Each invocation operates on its own slices; the corpus
// store and reranker client are shared, read-only dependencies, so a
// Pipeline is safe for concurrent use once constructed.
//
// # Failure semantics
//
// ErrIndexUnavailable and ErrRerankerUnavailable are fatal to the request
// and surfaced to the caller. An empty corpus is not an error: the empty
// passage list flows through every stage and yields a "no information found"
// result rather than a fabricated answer. A scoring failure for a single
// (query, passage) pair floors that passage's score instead of aborting the
// batch.
package pipeline
