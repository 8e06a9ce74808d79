// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, applies
// defaults for the fixed app ports, and validates that required values
// are present so the apps fail fast on bad config.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if
	// one exists, before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Env var prefix. MANUSCRIPTHUB_FINDER.PORT -> finder.port -> Config.Finder.Port.
const envPrefix = "MANUSCRIPTHUB_"

// Default ports for the two apps. The launcher always announces URLs
// built from these constants; an env port override moves the app but
// not the printed URL.
const (
	DefaultFinderPort  = "8501"
	DefaultCheckerPort = "7860"
)

// Config is the root configuration object shared by both apps.
type Config struct {
	Primary   Primary         `koanf:"primary"`
	Finder    AppConfig       `koanf:"finder"`
	Checker   AppConfig       `koanf:"checker"`
	Gemini    GeminiConfig    `koanf:"gemini"`
	Journals  JournalsConfig  `koanf:"journals"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Scraper   ScraperConfig   `koanf:"scraper"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env      string `koanf:"env" validate:"required,oneof=local development production"`
	LogLevel string `koanf:"log_level"`
}

// AppConfig groups settings for one HTTP app (finder or checker).
type AppConfig struct {
	Name               string   `koanf:"-"`
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	StaticDir          string   `koanf:"static_dir"`
}

// GeminiConfig controls the AI completion client.
//
// APIKey is intentionally not koanf-mapped: the key is consumed from
// the unprefixed GEMINI_API_KEY variable, matching how the hosted
// deployments store the secret. An empty key switches the recommender
// to its local keyword scorer instead of failing.
type GeminiConfig struct {
	APIKey      string  `koanf:"-"`
	Model       string  `koanf:"model" validate:"required"`
	Temperature float32 `koanf:"temperature"`
}

// JournalsConfig points at the curated journal dataset.
type JournalsConfig struct {
	MetadataFile string `koanf:"metadata_file" validate:"required"`
}

// AnalyticsConfig controls the SQLite-backed event log.
type AnalyticsConfig struct {
	Enabled      bool   `koanf:"enabled"`
	DatabaseFile string `koanf:"database_file" validate:"required"`
}

// ScraperConfig controls the live guidelines fetcher.
type ScraperConfig struct {
	TimeoutSeconds  int `koanf:"timeout_seconds" validate:"required"`
	CacheTTLMinutes int `koanf:"cache_ttl_minutes" validate:"required"`
}

// Load reads configuration from the environment, fills defaults,
// validates it, and returns the resulting config.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load env variables")
	}

	cfg := defaultConfig()

	if err := k.Unmarshal("", cfg); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}

	// The AI key lives outside the prefixed namespace (see GeminiConfig).
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	return cfg, nil
}

// defaultConfig returns the values a bare `manuscripthub launch` run
// expects: both apps on their fixed ports, dataset and analytics files
// in the working directory.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env:      "local",
			LogLevel: "info",
		},
		Finder: AppConfig{
			Name:               "finder",
			Port:               DefaultFinderPort,
			ReadTimeout:        15,
			WriteTimeout:       120,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          "web",
		},
		Checker: AppConfig{
			Name:               "checker",
			Port:               DefaultCheckerPort,
			ReadTimeout:        30,
			WriteTimeout:       180,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          "web",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-flash-latest",
			Temperature: 0.1,
		},
		Journals: JournalsConfig{
			MetadataFile: "journal_metadata.json",
		},
		Analytics: AnalyticsConfig{
			Enabled:      true,
			DatabaseFile: "analytics.db",
		},
		Scraper: ScraperConfig{
			TimeoutSeconds:  12,
			CacheTTLMinutes: 60,
		},
	}
}
