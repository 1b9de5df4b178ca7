package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/msads/advisor/internal/app"
	"github.com/msads/advisor/internal/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer() *Server {
	asker := &stubAsker{answer: app.Answer{Text: "answer", Verdict: "pass"}}
	return NewServer(asker, &stubPinger{}, log.NewNop())
}

func TestServer_RoutesRegistered(t *testing.T) {
	srv := newTestServer()
	handler := srv.Handler()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodPost, "/api/ask", `{"question": "q"}`, http.StatusOK},
		{http.MethodGet, "/api/ask", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestServer_RecoversFromPanic(t *testing.T) {
	srv := newTestServer()
	srv.mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_RunShutsDownOnContextCancel(t *testing.T) {
	srv := newTestServer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
