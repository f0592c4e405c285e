package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type UpstreamFailurePolicy string

const (
	// PolicyEmpty answers 200 with an empty list when the search provider fails.
	PolicyEmpty UpstreamFailurePolicy = "empty"
	// PolicyError answers 502.
	PolicyError UpstreamFailurePolicy = "error"
)

type Config struct {
	HTTPPort string

	SerperAPIKey  string
	SerperURL     string
	SerperCountry string

	FirecrawlAPIKey       string
	FirecrawlURL          string
	FirecrawlPollInterval time.Duration
	FirecrawlPollTimeout  time.Duration

	HTTPClientTimeout     time.Duration
	SchemaVariant         string
	UpstreamFailurePolicy UpstreamFailurePolicy
	CORSAllowedOrigins    []string
	LogLevel              string
}

// Load reads configuration from the environment and an optional .env file.
// Provider credentials may be empty here; requests fail without them.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:           envOrDefault("HTTP_PORT", "3000"),
		SerperAPIKey:       os.Getenv("SERPER_API_KEY"),
		SerperURL:          envOrDefault("SERPER_URL", "https://google.serper.dev/search"),
		SerperCountry:      envOrDefault("SERPER_COUNTRY", "in"),
		FirecrawlAPIKey:    os.Getenv("FIRECRAWL_API_KEY"),
		FirecrawlURL:       envOrDefault("FIRECRAWL_URL", "https://api.firecrawl.dev/v1/extract"),
		SchemaVariant:      envOrDefault("SCHEMA_VARIANT", "extended"),
		CORSAllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.FirecrawlPollInterval, err = envOrDuration("FIRECRAWL_POLL_INTERVAL", 2*time.Second); err != nil {
		return cfg, err
	}
	if cfg.FirecrawlPollTimeout, err = envOrDuration("FIRECRAWL_POLL_TIMEOUT", 5*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.HTTPClientTimeout, err = envOrDuration("HTTP_CLIENT_TIMEOUT", 120*time.Second); err != nil {
		return cfg, err
	}

	policy := UpstreamFailurePolicy(envOrDefault("UPSTREAM_FAILURE_POLICY", string(PolicyEmpty)))
	switch policy {
	case PolicyEmpty, PolicyError:
		cfg.UpstreamFailurePolicy = policy
	default:
		return cfg, fmt.Errorf("invalid UPSTREAM_FAILURE_POLICY: %q", policy)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envOrDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
