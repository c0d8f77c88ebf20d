package config

import (
	"log/slog"
	"os"
	"strings"
)

const apiKeyEnv = "API_KEY"

type Config struct {
	Port            string
	UpstreamBaseURL string
	Env             string
	LogLevel        string
	LogFormat       string
	AuditDBPath     string
	AuditWorkers    int
	AuditBuffer     int
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "https://api.api-ninjas.com"),
		Env:             getEnv("APP_ENV", "production"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		AuditDBPath:     getEnv("AUDIT_DB_PATH", ""),
		AuditWorkers:    getEnvInt("AUDIT_WORKERS", 1),
		AuditBuffer:     getEnvInt("AUDIT_BUFFER", 256),
	}
}

// ExposeErrorDetails reports whether internal error causes may be echoed in
// response bodies.
func (c Config) ExposeErrorDetails() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EnvAPIKey reads the upstream API key from the environment. It is called per
// request so a rotated key takes effect without a restart.
func EnvAPIKey() string {
	return strings.TrimSpace(os.Getenv(apiKeyEnv))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
