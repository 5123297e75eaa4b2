package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	DBDriver             string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	FrontendURL          string
	JWTSecret            string
	AccessTokenTTL       time.Duration
	BotThinkDelay        time.Duration
	DefaultDifficulty    string
	StatsCacheTTL        time.Duration
	SessionIdleTimeout   time.Duration
	CleanupInterval      time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	if frontendURL != "http://localhost:5173" {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173") // Local development
	}
	allowedOrigins = append(allowedOrigins, splitCSV(GetEnv("ALLOWED_ORIGINS", ""))...)

	// Database Config
	// "pgx" (default) or "postgres" for lib/pq
	dbDriver := GetEnv("DB_DRIVER", "pgx")
	// Append simple_protocol for PgBouncer compatibility (pgx driver only)
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" && dbDriver == "pgx" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		DBDriver:             dbDriver,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		FrontendURL:          frontendURL,
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		AccessTokenTTL:       GetEnvAsDuration("ACCESS_TOKEN_TTL_MINUTES", 24*time.Hour, time.Minute),
		BotThinkDelay:        GetEnvAsDuration("BOT_THINK_DELAY_MS", 500*time.Millisecond, time.Millisecond),
		DefaultDifficulty:    GetEnv("DEFAULT_DIFFICULTY", "expert"),
		StatsCacheTTL:        GetEnvAsDuration("STATS_CACHE_TTL_SECONDS", 5*time.Minute, time.Second),
		SessionIdleTimeout:   GetEnvAsDuration("SESSION_IDLE_TIMEOUT_MINUTES", time.Hour, time.Minute),
		CleanupInterval:      GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 10*time.Minute, time.Minute),
	}

	return AppConfig
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of `unit` (e.g. BOT_THINK_DELAY_MS
// in milliseconds). Negative values fall back to the default.
func GetEnvAsDuration(key string, defaultValue, unit time.Duration) time.Duration {
	n := GetEnvAsInt(key, -1)
	if n < 0 {
		return defaultValue
	}
	return time.Duration(n) * unit
}
