package app

import (
	"context"
	"time"

	"github.com/msads/advisor/internal/pipeline"
)

// Answer is the complete response to one question, shared by the CLI and
// the HTTP API.
type Answer struct {
	// Text is the generated answer. Empty when the guardrail withheld the
	// context or no passage survived the pipeline.
	Text string `json:"answer"`

	// Sources lists the source identifier of each passage the answer is
	// grounded on, in context order.
	Sources []string `json:"sources,omitempty"`

	// Advisory carries the guardrail or no-information notice, if any.
	Advisory string `json:"advisory,omitempty"`

	// Verdict is the guardrail outcome: pass, warn, or abstain.
	Verdict string `json:"verdict"`
}

// Ask runs the full answer path: pipeline, then generation unless the
// verdict forbids it. An abstain or an empty context returns only the
// advisory; generation never sees withheld or missing evidence.
func (a *App) Ask(ctx context.Context, question string) (Answer, error) {
	today := time.Now()

	result, err := a.Pipeline.Run(ctx, pipeline.Request{
		Question:  question,
		Today:     today,
		RetrieveK: a.Config.RetrieveK,
		RerankK:   a.Config.RerankK,
	})
	if err != nil {
		return Answer{}, err
	}

	ans := Answer{
		Sources:  result.Sources,
		Advisory: result.Verdict.Advisory,
		Verdict:  result.Verdict.Kind.String(),
	}

	if result.Verdict.Kind == pipeline.VerdictAbstain || result.Context == "" {
		return ans, nil
	}

	text, err := a.Generator.Generate(ctx, question, result.Context, today)
	if err != nil {
		return Answer{}, err
	}
	ans.Text = text
	return ans, nil
}
