// Package answer turns assembled context into a grounded natural-language
// answer via Gemini. It is the only package that talks to the model for
// generation; everything upstream only decides what the model is allowed
// to see.
package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

const dateLayout = "January 2, 2006"

const systemTemplate = `You are the official AI assistant for the %s program.
Use only the provided extracted documents to answer. Do not hallucinate.
Today's date is %s. Do not list deadlines that have already passed relative to today.

If the answer cannot be verified from the official program information, do not guess.
If you cannot find the answer, politely tell the user to reach out to the admissions contact email:
%s`

// Generator produces answers with a fixed model and program identity.
type Generator struct {
	g          *genkit.Genkit
	model      string
	program    string
	admissions string
}

// NewGenerator creates a Generator. model is a full genkit model name such
// as "googleai/gemini-2.5-flash".
func NewGenerator(g *genkit.Genkit, model, program, admissions string) *Generator {
	return &Generator{g: g, model: model, program: program, admissions: admissions}
}

// Generate answers question using only the assembled context. today anchors
// the model's view of which deadlines are still open; zero means time.Now().
// The caller must not invoke Generate when the guardrail withheld the
// context.
func (gen *Generator) Generate(ctx context.Context, question, assembled string, today time.Time) (string, error) {
	if question == "" {
		return "", fmt.Errorf("question must not be empty")
	}
	if today.IsZero() {
		today = time.Now()
	}

	system := gen.systemPrompt(today)
	prompt := buildPrompt(assembled, question)

	resp, err := genkit.Generate(ctx, gen.g,
		ai.WithModelName(gen.model),
		ai.WithSystem(system),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("model returned an empty answer")
	}
	return text, nil
}

func (gen *Generator) systemPrompt(today time.Time) string {
	return fmt.Sprintf(systemTemplate,
		gen.program, today.Format(dateLayout), gen.admissions)
}

func buildPrompt(assembled, question string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion:\n%s\n\nAnswer:", assembled, question)
}
