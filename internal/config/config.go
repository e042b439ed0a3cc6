package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel  string
	LogFormat string

	LayoutProfilePath string
	ReportPath        string

	APIPort           string
	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int

	NATSURL     string
	NATSSubject string

	WorkerMetricsPort string

	OpenRetryMaxAttempts    int
	OpenRetryInitialBackoff time.Duration
	OpenRetryMaxBackoff     time.Duration
	OpenBreakerEnabled      bool
}

func Load() Config {
	return Config{
		LogLevel:  mustEnv("LOG_LEVEL", "info"),
		LogFormat: mustEnv("LOG_FORMAT", "json"),

		LayoutProfilePath: mustEnv("LAYOUT_PROFILE_PATH", ""),
		ReportPath:        mustEnv("REPORT_PATH", ""),

		APIPort:           mustEnv("API_PORT", "8080"),
		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 10),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 4),

		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "syllabus.documents"),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),

		OpenRetryMaxAttempts:    mustEnvInt("OPEN_RETRY_MAX_ATTEMPTS", 3),
		OpenRetryInitialBackoff: time.Duration(mustEnvInt("OPEN_RETRY_INITIAL_BACKOFF_MS", 200)) * time.Millisecond,
		OpenRetryMaxBackoff:     time.Duration(mustEnvInt("OPEN_RETRY_MAX_BACKOFF_MS", 1000)) * time.Millisecond,
		OpenBreakerEnabled:      mustEnvBool("OPEN_BREAKER_ENABLED", true),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
