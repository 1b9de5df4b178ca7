package pipeline

import "strings"

// contextSeparator joins passage contents in the assembled context block.
const contextSeparator = "\n\n"

// Assemble builds the final Result from the surviving passages and the
// guardrail verdict.
//
// On abstain, no passage content may reach generation: the result carries
// only the advisory, with empty context and no sources. Otherwise passages
// are concatenated in their current order with a parallel list of source
// identifiers for citation. A warn advisory rides along untouched; the
// assembler never alters passage content.
func Assemble(passages []Passage, verdict Verdict) Result {
	if verdict.Kind == VerdictAbstain {
		return Result{Verdict: verdict}
	}

	contents := make([]string, len(passages))
	sources := make([]string, len(passages))
	for i, p := range passages {
		contents[i] = p.Content
		sources[i] = p.SourceID
	}

	return Result{
		Context: strings.Join(contents, contextSeparator),
		Sources: sources,
		Verdict: verdict,
	}
}
