package pipeline

import "strings"

// Passage is one retrieved unit of corpus text. Content and SourceID never
// change after retrieval; Score is overwritten by each scoring stage.
// Stages pass passages by value and return fresh slices, so no state is
// shared between stages or invocations.
type Passage struct {
	Content  string
	SourceID string
	Score    float64
}

// Query is the user question plus its lowercase form for keyword matching.
type Query struct {
	Raw     string
	Lowered string
}

// NewQuery builds a Query from the raw question string.
func NewQuery(raw string) Query {
	return Query{Raw: raw, Lowered: strings.ToLower(raw)}
}

// VerdictKind enumerates guardrail outcomes.
type VerdictKind int

const (
	// VerdictPass lets the answer through unrestricted.
	VerdictPass VerdictKind = iota

	// VerdictWarn lets the answer through with an advisory attached.
	VerdictWarn

	// VerdictAbstain withholds passage content entirely; only the advisory
	// is returned.
	VerdictAbstain
)

// String returns the verdict kind's wire/log representation.
func (k VerdictKind) String() string {
	switch k {
	case VerdictPass:
		return "pass"
	case VerdictWarn:
		return "warn"
	case VerdictAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

// Verdict is the guardrail decision for one question/passage-set pair.
type Verdict struct {
	Kind     VerdictKind
	Advisory string
}

// Result is the pipeline's sole output: the assembled context, the source
// identifiers of contributing passages in context order, and the guardrail
// verdict. It is what the answer generator and the UI consume.
type Result struct {
	Context string
	Sources []string
	Verdict Verdict
}
