package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Secrets only ever come from the environment.
type Config struct {
	Port string

	// Storage: Postgres when DatabaseURL is set, SQLite at DBPath otherwise.
	DatabaseURL string
	DBPath      string
	SeedPath    string

	// Plan cache; disabled when RedisURL is empty.
	RedisURL     string
	PlanCacheTTL time.Duration

	Planner Planner

	AlertWebhookURL         string
	AlertWebhookSecret      string
	AlertWebhookMaxAttempts int

	// Upper bound on post-plan hook dispatch (alerts, explanations).
	HookTimeout time.Duration

	LogFile  string
	LogLevel slog.Level
}

// Planner holds the default planning parameters used when a request omits them.
type Planner struct {
	TargetX        float64 `yaml:"target_x"`
	TargetY        float64 `yaml:"target_y"`
	Threshold      float64 `yaml:"threshold"`
	OrderPolicy    string  `yaml:"order_policy"`
	TieBreakPolicy string  `yaml:"tiebreak_policy"`
}

// Load reads .env (if present), then the environment, then the optional YAML
// planner file named by PLANNER_CONFIG. Environment values win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found (using environment variables)")
	}

	cfg := Config{
		Port:               Get("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBPath:             Get("DB_PATH", "data/app.db"),
		SeedPath:           Get("SEED_PATH", "data/seeds/graph_data.json"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AlertWebhookURL:    os.Getenv("ALERT_WEBHOOK_URL"),
		AlertWebhookSecret: os.Getenv("ALERT_WEBHOOK_SECRET"),
		LogFile:            os.Getenv("LOG_FILE"),
		LogLevel:           ParseLogLevel(Get("LOG_LEVEL", "INFO")),
		Planner:            Planner{Threshold: 0.9},
	}

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if err := loadPlannerFile(path, &cfg.Planner); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	var err error
	if cfg.Planner.TargetX, err = getFloat("TARGET_X", cfg.Planner.TargetX); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.Planner.TargetY, err = getFloat("TARGET_Y", cfg.Planner.TargetY); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.Planner.Threshold, err = getFloat("HEALTH_THRESHOLD", cfg.Planner.Threshold); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.Planner.OrderPolicy = Get("ORDER_POLICY", cfg.Planner.OrderPolicy)
	cfg.Planner.TieBreakPolicy = Get("TIEBREAK_POLICY", cfg.Planner.TieBreakPolicy)

	ttl := Get("PLAN_CACHE_TTL", "10m")
	if cfg.PlanCacheTTL, err = time.ParseDuration(ttl); err != nil {
		return Config{}, fmt.Errorf("load config: PLAN_CACHE_TTL %q: %w", ttl, err)
	}

	hookTimeout := Get("HOOK_TIMEOUT", "5s")
	if cfg.HookTimeout, err = time.ParseDuration(hookTimeout); err != nil {
		return Config{}, fmt.Errorf("load config: HOOK_TIMEOUT %q: %w", hookTimeout, err)
	}

	attempts := Get("ALERT_WEBHOOK_MAX_ATTEMPTS", "4")
	if cfg.AlertWebhookMaxAttempts, err = strconv.Atoi(attempts); err != nil || cfg.AlertWebhookMaxAttempts < 1 {
		return Config{}, fmt.Errorf("load config: ALERT_WEBHOOK_MAX_ATTEMPTS %q must be a positive integer", attempts)
	}

	return cfg, nil
}

func loadPlannerFile(path string, p *Planner) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read planner config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, p); err != nil {
		return fmt.Errorf("parse planner config %q: %w", path, err)
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, errors.Unwrap(err))
	}
	return f, nil
}

func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
