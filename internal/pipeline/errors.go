package pipeline

import "errors"

var (
	// ErrIndexUnavailable indicates the vector index could not be reached.
	// Fatal to the request; surfaced to the caller, never retried here.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrRerankerUnavailable indicates the cross-encoder scoring service
	// could not be reached. Fatal to the request; surfaced to the caller.
	ErrRerankerUnavailable = errors.New("reranker unavailable")
)
