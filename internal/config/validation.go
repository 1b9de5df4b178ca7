package config

import (
	"fmt"
	"net/url"
	"os"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required\n"+
			"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
			ErrMissingAPIKey)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model cannot be empty", ErrInvalidEmbedderModel)
	}

	if c.RetrieveK < 1 || c.RetrieveK > MaxRetrieveK {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidRetrieveK, MaxRetrieveK, c.RetrieveK)
	}
	// RerankK may not exceed RetrieveK: later stages only ever shrink the
	// passage set.
	if c.RerankK < 1 || c.RerankK > c.RetrieveK {
		return fmt.Errorf("%w: must be between 1 and retrieve_k (%d), got %d",
			ErrInvalidRerankK, c.RetrieveK, c.RerankK)
	}

	if err := validateHTTPURL(c.RerankerURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRerankerURL, err)
	}

	if c.CorpusDir == "" {
		return fmt.Errorf("%w: corpus_dir cannot be empty", ErrInvalidCorpusDir)
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host cannot be empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d",
			ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: database name cannot be empty", ErrInvalidPostgresDBName)
	}

	return nil
}

// validateHTTPURL checks that s is an absolute http(s) URL.
func validateHTTPURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", s)
	}
	return nil
}
