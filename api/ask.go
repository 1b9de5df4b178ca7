package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/msads/advisor/internal/app"
	"github.com/msads/advisor/internal/pipeline"
)

// MaxQuestionLength bounds the accepted question size.
const MaxQuestionLength = 2000

// Asker is the question-answering capability this handler consumes.
// app.App satisfies it.
type Asker interface {
	Ask(ctx context.Context, question string) (app.Answer, error)
}

// AskHandler handles the question answering endpoint.
type AskHandler struct {
	asker  Asker
	logger *slog.Logger
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(asker Asker, logger *slog.Logger) *AskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AskHandler{asker: asker, logger: logger}
}

// RegisterRoutes registers the ask route on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.ask)
}

// AskRequest is the request body for a question.
type AskRequest struct {
	Question string `json:"question"`
}

// ask answers one question. Upstream outages map to 503 so callers can
// distinguish "try again later" from a bad request.
func (h *AskHandler) ask(w http.ResponseWriter, r *http.Request) {
	if h.asker == nil {
		h.logger.Error("asker is nil")
		writeError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "question must not be empty", "")
		return
	}
	if len(question) > MaxQuestionLength {
		writeError(w, http.StatusBadRequest, "question too long", "")
		return
	}

	answer, err := h.asker.Ask(r.Context(), question)
	if err != nil {
		h.logger.Error("answering failed",
			"error", err,
			"request_id", requestID(r.Context()))
		switch {
		case errors.Is(err, pipeline.ErrIndexUnavailable):
			writeError(w, http.StatusServiceUnavailable, "index unavailable", "")
		case errors.Is(err, pipeline.ErrRerankerUnavailable):
			writeError(w, http.StatusServiceUnavailable, "reranker unavailable", "")
		default:
			writeError(w, http.StatusInternalServerError, "failed to answer question", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}
