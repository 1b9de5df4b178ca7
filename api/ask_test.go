package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msads/advisor/internal/app"
	"github.com/msads/advisor/internal/log"
	"github.com/msads/advisor/internal/pipeline"
)

type stubAsker struct {
	answer app.Answer
	err    error

	gotQuestion string
}

func (s *stubAsker) Ask(ctx context.Context, question string) (app.Answer, error) {
	s.gotQuestion = question
	if s.err != nil {
		return app.Answer{}, s.err
	}
	return s.answer, nil
}

func postAsk(t *testing.T, h *AskHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ask(w, req)
	return w
}

func TestAskHandler_OK(t *testing.T) {
	asker := &stubAsker{answer: app.Answer{
		Text:    "The deadline for Round 2 is March 1, 2026.",
		Sources: []string{"deadlines.txt"},
		Verdict: "warn",
	}}
	h := NewAskHandler(asker, log.NewNop())

	w := postAsk(t, h, `{"question": "When is the deadline?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "When is the deadline?", asker.gotQuestion)

	var got app.Answer
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "The deadline for Round 2 is March 1, 2026.", got.Text)
	assert.Equal(t, []string{"deadlines.txt"}, got.Sources)
	assert.Equal(t, "warn", got.Verdict)
}

func TestAskHandler_TrimsQuestion(t *testing.T) {
	asker := &stubAsker{answer: app.Answer{Verdict: "pass"}}
	h := NewAskHandler(asker, log.NewNop())

	w := postAsk(t, h, `{"question": "  what courses?  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "what courses?", asker.gotQuestion)
}

func TestAskHandler_BadRequests(t *testing.T) {
	h := NewAskHandler(&stubAsker{}, log.NewNop())

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"empty question", `{"question": ""}`},
		{"whitespace question", `{"question": "   "}`},
		{"too long", `{"question": "` + strings.Repeat("a", MaxQuestionLength+1) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAsk(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAskHandler_UpstreamOutagesAre503(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"index down", pipeline.ErrIndexUnavailable},
		{"reranker down", pipeline.ErrRerankerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAskHandler(&stubAsker{err: tt.err}, log.NewNop())
			w := postAsk(t, h, `{"question": "anything"}`)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		})
	}
}

func TestAskHandler_UnknownErrorIs500(t *testing.T) {
	h := NewAskHandler(&stubAsker{err: errors.New("boom")}, log.NewNop())
	w := postAsk(t, h, `{"question": "anything"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
