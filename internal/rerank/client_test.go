package rerank

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Score(t *testing.T) {
	var gotBody scoreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rerank" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scores": []any{0.91, 0.12},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	scores, err := c.Score(context.Background(), "when is round 1", []string{"passage a", "passage b"})
	if err != nil {
		t.Fatalf("Score() = %v", err)
	}

	if gotBody.Query != "when is round 1" || len(gotBody.Texts) != 2 {
		t.Errorf("request body = %+v", gotBody)
	}
	if len(scores) != 2 || scores[0] != 0.91 || scores[1] != 0.12 {
		t.Errorf("scores = %v", scores)
	}
}

func TestClient_Score_NullScoreIsNaN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scores": []any{0.5, nil},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	scores, err := c.Score(context.Background(), "q", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Score() = %v", err)
	}
	if scores[0] != 0.5 {
		t.Errorf("scores[0] = %v", scores[0])
	}
	if !math.IsNaN(scores[1]) {
		t.Errorf("scores[1] = %v, want NaN", scores[1])
	}
}

func TestClient_Score_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"scores": []any{0.5}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Score(context.Background(), "q", []string{"a", "b"}); err == nil {
		t.Error("want error on score count mismatch")
	}
}

func TestClient_Score_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Score(context.Background(), "q", []string{"a"}); err == nil {
		t.Error("want error on 503")
	}
}

func TestClient_Score_EmptyTexts(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // must not be contacted
	scores, err := c.Score(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("Score() = %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores = %v, want empty", scores)
	}
}

func TestClient_Score_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Score(context.Background(), "q", []string{"a"}); err == nil {
		t.Error("want error when sidecar is unreachable")
	}
}
