package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                 = "8090"
	DefaultMapirBaseURL         = "https://map.ir"
	DefaultMapirTimeoutSeconds  = 30
	MaxMapirTimeoutSeconds      = 300
	DefaultServerTimeoutSeconds = 10
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Mapir   MapirConfig
	Tracing TracingConfig
	Sentry  SentryConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	Version      string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// MapirConfig holds the upstream map.ir settings
type MapirConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

// SentryConfig holds error reporting settings
type SentryConfig struct {
	DSN              string
	TracesSampleRate float64
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", DefaultPort),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			Version:      getEnv("SERVICE_VERSION", "dev"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", DefaultServerTimeoutSeconds),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", DefaultServerTimeoutSeconds),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Mapir: MapirConfig{
			APIKey:         getEnv("MAPIR_API_KEY", ""),
			BaseURL:        getEnv("MAPIR_BASE_URL", DefaultMapirBaseURL),
			TimeoutSeconds: getEnvAsInt("MAPIR_TIMEOUT_SECONDS", DefaultMapirTimeoutSeconds),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate: getEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0),
		},
		Sentry: SentryConfig{
			DSN:              getEnv("SENTRY_DSN", ""),
			TracesSampleRate: getEnvAsFloat("SENTRY_TRACES_SAMPLE_RATE", 0.1),
		},
	}

	if cfg.Mapir.TimeoutSeconds <= 0 {
		cfg.Mapir.TimeoutSeconds = DefaultMapirTimeoutSeconds
	}
	if cfg.Mapir.TimeoutSeconds > MaxMapirTimeoutSeconds {
		return nil, fmt.Errorf("MAPIR_TIMEOUT_SECONDS %d exceeds maximum of %d",
			cfg.Mapir.TimeoutSeconds, MaxMapirTimeoutSeconds)
	}

	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = DefaultServerTimeoutSeconds
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = DefaultServerTimeoutSeconds
	}

	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return nil, fmt.Errorf("OTEL_TRACE_SAMPLE_RATE must be within [0, 1], got %v", cfg.Tracing.SampleRate)
	}

	return cfg, nil
}

// MapirTimeout returns the upstream request timeout
func (c MapirConfig) MapirTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AllowedOrigins splits CORSOrigins into trimmed, non-empty entries
func (c ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
