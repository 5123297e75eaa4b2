package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_URI", "DB_DRIVER", "ALLOWED_ORIGINS", "FRONTEND_URL",
		"BOT_THINK_DELAY_MS", "DEFAULT_DIFFICULTY", "STATS_CACHE_TTL_SECONDS", "SESSION_IDLE_TIMEOUT_MINUTES", "ACCESS_TOKEN_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if AppConfig != cfg {
		t.Fatal("LoadConfig must publish AppConfig")
	}
	if cfg.Port != "8080" || cfg.DBDriver != "pgx" {
		t.Fatalf("unexpected defaults: port %q driver %q", cfg.Port, cfg.DBDriver)
	}
	if cfg.BotThinkDelay != 500*time.Millisecond {
		t.Fatalf("think delay: got %v", cfg.BotThinkDelay)
	}
	if cfg.DefaultDifficulty != "expert" {
		t.Fatalf("default difficulty: got %q", cfg.DefaultDifficulty)
	}
	if cfg.StatsCacheTTL != 5*time.Minute || cfg.SessionIdleTimeout != time.Hour || cfg.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("unexpected durations: %v %v %v", cfg.StatsCacheTTL, cfg.SessionIdleTimeout, cfg.AccessTokenTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("allowed origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://gomoku.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com")
	t.Setenv("BOT_THINK_DELAY_MS", "0")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/gomoku")

	cfg := LoadConfig()

	want := []string{"https://gomoku.example.com", "http://localhost:5173", "https://a.example.com", "https://b.example.com"}
	if strings.Join(cfg.AllowedOrigins, ",") != strings.Join(want, ",") {
		t.Fatalf("allowed origins: got %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.BotThinkDelay != 0 {
		t.Fatalf("zero delay must be honoured, got %v", cfg.BotThinkDelay)
	}
	if cfg.StatsCacheTTL != 5*time.Minute {
		t.Fatalf("invalid value must fall back to the default, got %v", cfg.StatsCacheTTL)
	}
	if !strings.Contains(cfg.DatabaseURL, "default_query_exec_mode=simple_protocol") {
		t.Fatalf("pgx URL should get simple_protocol, got %q", cfg.DatabaseURL)
	}
}

func TestLibPQURLIsLeftAlone(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/gomoku")

	cfg := LoadConfig()
	if cfg.DatabaseURL != "postgres://u:p@localhost:5432/gomoku" {
		t.Fatalf("lib/pq URL must not carry pgx parameters, got %q", cfg.DatabaseURL)
	}
}
