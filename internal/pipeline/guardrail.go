package pipeline

import (
	"fmt"
	"strings"
)

// Category is one sensitive topic with its trigger synonyms. The guardrail
// table is data-driven so categories can be added and tested independently.
type Category struct {
	Label string
	Terms []string
}

// DefaultCategories are the topics where a hallucinated answer is dangerous:
// time-bound or binding facts about the program. Order matters: the first
// category that matches the question determines the verdict.
var DefaultCategories = []Category{
	{Label: "deadline", Terms: []string{"deadline", "due date", "closes", "cutoff", "round"}},
	{Label: "tuition", Terms: []string{"fee", "tuition", "cost", "price"}},
	{Label: "requirement", Terms: []string{"requirement", "criteria", "prerequisite", "gpa"}},
}

// Guardrail decides whether an answer may proceed (pass), proceed with a
// caveat (warn), or must be withheld (abstain). It restricts only the
// categories in its table and leaves every other question unrestricted.
type Guardrail struct {
	categories []Category
	contact    string
}

// NewGuardrail creates a Guardrail with the given category table and
// admissions contact address for abstain advisories. A nil table uses
// DefaultCategories.
func NewGuardrail(categories []Category, contact string) *Guardrail {
	if categories == nil {
		categories = DefaultCategories
	}
	return &Guardrail{categories: categories, contact: contact}
}

// Classify produces exactly one verdict for the question/passage-set pair.
//
// For the first category whose synonyms appear in the lowered question: if
// none of that category's synonyms appear anywhere in the passage text, the
// evidence cannot support an answer and the verdict is abstain; if at least
// one does, the verdict is warn: evidence exists but its completeness
// cannot be confirmed. Later matching categories are ignored, not combined.
// A question matching no category passes with no advisory.
func (g *Guardrail) Classify(query Query, passages []Passage) Verdict {
	var combined strings.Builder
	for _, p := range passages {
		combined.WriteString(strings.ToLower(p.Content))
		combined.WriteString(" ")
	}
	evidence := combined.String()

	for _, cat := range g.categories {
		if !containsAny(query.Lowered, cat.Terms) {
			continue
		}
		if !containsAny(evidence, cat.Terms) {
			return Verdict{
				Kind: VerdictAbstain,
				Advisory: fmt.Sprintf(
					"I can't verify that from the official program pages. Please contact admissions at %s.",
					g.contact),
			}
		}
		return Verdict{
			Kind: VerdictWarn,
			Advisory: fmt.Sprintf(
				"This answer is based on retrieved information about %s; please confirm with admissions for the most up-to-date details.",
				cat.Label),
		}
	}

	return Verdict{Kind: VerdictPass}
}

// containsAny reports whether s contains any of the terms as a substring.
// s must already be lowercased; terms are stored lowercase.
func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
