package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	LogLevel       slog.Level

	JWTSecret string
	JWTIssuer string

	// RedisURL enables request-id deduplication and shared rate limit counters when set.
	RedisURL        string
	RequestDedupTTL time.Duration
	RateLimit       string

	CORSAllowedOrigins []string

	// ReconcileInterval schedules the reconciliation sweep; zero disables it.
	ReconcileInterval time.Duration
	// AutoRecalculateBackdated runs the recalculation engine after an overridden backdated post.
	AutoRecalculateBackdated bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "ledger-period-engine")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REQUEST_DEDUP_TTL", "24h")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("RECONCILE_INTERVAL", "1h")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("AUTO_RECALCULATE_BACKDATED", true)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.LogLevel = parseLevel(viper.GetString("LOG_LEVEL"))

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is using the default insecure key in production.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RequestDedupTTL = durationOrDefault("REQUEST_DEDUP_TTL", 24*time.Hour)
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.ReconcileInterval = durationOrDefault("RECONCILE_INTERVAL", time.Hour)
	cfg.AutoRecalculateBackdated = viper.GetBool("AUTO_RECALCULATE_BACKDATED")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
