// Package app provides application initialization and dependency wiring.
//
// App is the container holding every long-lived component: the Genkit
// instance, the database pool, the corpus store, and the assembled
// question-answering pipeline. Construction happens once in Setup; the
// command layer and the HTTP server only consume the finished container.
package app

import (
	"context"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msads/advisor/internal/answer"
	"github.com/msads/advisor/internal/config"
	"github.com/msads/advisor/internal/corpus"
	"github.com/msads/advisor/internal/pipeline"
)

// App is the core application container.
type App struct {
	Config *config.Config

	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	DBPool   *pgxpool.Pool

	Corpus    *corpus.Store
	Pipeline  *pipeline.Pipeline
	Generator *answer.Generator

	logger *slog.Logger
	cancel context.CancelFunc
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases all resources held by the container.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.DBPool != nil {
		a.DBPool.Close()
		if a.logger != nil {
			a.logger.Debug("database pool closed")
		}
	}
	return nil
}
