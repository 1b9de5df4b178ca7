// Package config provides application configuration with multi-source priority.
//
// Sources (highest to lowest priority):
//  1. Environment variables (ADVISOR_* overrides, DATABASE_URL)
//  2. Config file (./config.yaml or ~/.advisor/config.yaml)
//  3. Default values
//
// Categories:
//   - AI: answer model, embedder model (Genkit / Google AI)
//   - Storage: PostgreSQL + pgvector connection (see storage.go)
//   - Pipeline: retrieval depth, rerank cut-off, reranker endpoint
//   - Crawl: corpus crawler settings
//
// Validation lives in validation.go and uses sentinel errors so callers can
// classify failures with errors.Is().
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the answer model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is invalid.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidRetrieveK indicates the first-stage retrieval depth is out of range.
	ErrInvalidRetrieveK = errors.New("invalid retrieve_k")

	// ErrInvalidRerankK indicates the rerank cut-off is out of range.
	ErrInvalidRerankK = errors.New("invalid rerank_k")

	// ErrInvalidRerankerURL indicates the reranker endpoint is invalid.
	ErrInvalidRerankerURL = errors.New("invalid reranker URL")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidCorpusDir indicates the corpus directory is invalid.
	ErrInvalidCorpusDir = errors.New("invalid corpus directory")
)

const (
	// DefaultAnswerModel is the Genkit model reference used for answer
	// generation when none is configured.
	DefaultAnswerModel = "googleai/gemini-2.5-flash"

	// DefaultEmbedderModel embeds corpus passages and queries.
	DefaultEmbedderModel = "text-embedding-004"

	// DefaultRetrieveK is the first-stage (recall) retrieval depth. The
	// reranker sees all temporal-filter survivors, so this is deliberately
	// larger than the final context size.
	DefaultRetrieveK = 20

	// DefaultRerankK is the number of passages kept after reranking.
	DefaultRerankK = 5

	// MaxRetrieveK bounds retrieval depth to keep rerank latency sane.
	MaxRetrieveK = 100
)

// Config stores application configuration.
type Config struct {
	// AI model configuration
	ModelName     string `mapstructure:"model_name"`
	EmbedderModel string `mapstructure:"embedder_model"`

	// Program identity, used in prompts and guardrail advisories
	ProgramName     string `mapstructure:"program_name"`
	AdmissionsEmail string `mapstructure:"admissions_email"`

	// Pipeline configuration
	RetrieveK   int    `mapstructure:"retrieve_k"`
	RerankK     int    `mapstructure:"rerank_k"`
	RerankerURL string `mapstructure:"reranker_url"`

	// Corpus configuration
	CorpusDir string `mapstructure:"corpus_dir"`

	// Crawler configuration
	CrawlStartURL      string `mapstructure:"crawl_start_url"`
	CrawlAllowedDomain string `mapstructure:"crawl_allowed_domain"`
	CrawlMaxDepth      int    `mapstructure:"crawl_max_depth"`
	CrawlDelayMs       int    `mapstructure:"crawl_delay_ms"`

	// HTTP server configuration
	ServeAddr string `mapstructure:"serve_addr"`

	// Storage configuration (see storage.go)
	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDBName   string `mapstructure:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode"`
}

// Load loads configuration.
// Priority: environment variables > config file > defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".advisor"))
	}

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL has the highest priority for PostgreSQL settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultAnswerModel)
	v.SetDefault("embedder_model", DefaultEmbedderModel)

	v.SetDefault("program_name", "University of Chicago MS in Applied Data Science")
	v.SetDefault("admissions_email", "applieddatascience-admissions@uchicago.edu")

	v.SetDefault("retrieve_k", DefaultRetrieveK)
	v.SetDefault("rerank_k", DefaultRerankK)
	v.SetDefault("reranker_url", "http://localhost:8787")

	v.SetDefault("corpus_dir", "data/corpus")

	v.SetDefault("crawl_start_url", "https://datascience.uchicago.edu/education/masters-programs/ms-in-applied-data-science/")
	v.SetDefault("crawl_allowed_domain", "datascience.uchicago.edu")
	v.SetDefault("crawl_max_depth", 3)
	v.SetDefault("crawl_delay_ms", 1000)

	v.SetDefault("serve_addr", "127.0.0.1:3400")

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "advisor")
	v.SetDefault("postgres_password", "advisor_dev_password")
	v.SetDefault("postgres_db_name", "advisor")
	v.SetDefault("postgres_ssl_mode", "disable")
}

// bindEnvVariables binds environment overrides explicitly.
// GEMINI_API_KEY is read directly by Genkit, not via Viper; Validate only
// checks its presence.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a failure here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("model_name", "ADVISOR_MODEL_NAME")
	mustBind("embedder_model", "ADVISOR_EMBEDDER_MODEL")
	mustBind("reranker_url", "ADVISOR_RERANKER_URL")
	mustBind("corpus_dir", "ADVISOR_CORPUS_DIR")
	mustBind("serve_addr", "ADVISOR_SERVE_ADDR")
	mustBind("retrieve_k", "ADVISOR_RETRIEVE_K")
	mustBind("rerank_k", "ADVISOR_RERANK_K")
	mustBind("postgres_password", "ADVISOR_POSTGRES_PASSWORD")
}
