package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config is everything the service reads from the environment
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	SessionFile           string        `env:"SESSION_FILE" envDefault:"data/sessions.json"`
	SessionSweepInterval  time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	PreVerifiedSessionTTL time.Duration `env:"PREVERIFIED_SESSION_TTL" envDefault:"24h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	GenerativeProvider string `env:"GENERATIVE_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
	GeminiModel        string `env:"GEMINI_MODEL"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIModel        string `env:"OPENAI_MODEL"`

	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	GenerationTimeout     time.Duration `env:"GENERATION_TIMEOUT" envDefault:"60s"`
	VideoSearchTimeout    time.Duration `env:"VIDEO_SEARCH_TIMEOUT" envDefault:"10s"`
	MaxChapters           int           `env:"MAX_CHAPTERS" envDefault:"15"`
	EnrichmentConcurrency int           `env:"ENRICHMENT_CONCURRENCY" envDefault:"15"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	AuthFailClosed    bool `env:"AUTH_FAIL_CLOSED" envDefault:"false"`
	AuthEnforceExpiry bool `env:"AUTH_ENFORCE_EXPIRY" envDefault:"false"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the .env files (default ".env") into the environment, then
// parses and checks the config. Missing env files are only a warning.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.Warn("Could not load env file, using environment only", "file", f)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.GenerativeProvider = strings.ToLower(strings.TrimSpace(cfg.GenerativeProvider))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate catches settings the service can't run with
func (c Config) Validate() error {
	var errs []error

	switch c.GenerativeProvider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("GENERATIVE_PROVIDER must be gemini or openai, got %q", c.GenerativeProvider))
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text, json or logfmt, got %q", c.LogFormat))
	}
	if c.MaxChapters < 3 {
		errs = append(errs, fmt.Errorf("MAX_CHAPTERS must be at least 3, got %d", c.MaxChapters))
	}
	if c.EnrichmentConcurrency < 1 {
		errs = append(errs, fmt.Errorf("ENRICHMENT_CONCURRENCY must be at least 1, got %d", c.EnrichmentConcurrency))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_SWEEP_INTERVAL must be positive"))
	}
	if c.PreVerifiedSessionTTL <= 0 {
		errs = append(errs, errors.New("PREVERIFIED_SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// GenerativeAPIKey returns the key for whichever provider is selected
func (c Config) GenerativeAPIKey() string {
	if c.GenerativeProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// GenerativeModel returns the model for whichever provider is selected
func (c Config) GenerativeModel() string {
	if c.GenerativeProvider == "openai" {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}
