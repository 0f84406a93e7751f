package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "DB_PATH", "REDIS_URL", "TARGET_X", "TARGET_Y",
		"HEALTH_THRESHOLD", "ORDER_POLICY", "TIEBREAK_POLICY", "PLANNER_CONFIG",
		"PLAN_CACHE_TTL", "LOG_LEVEL", "HOOK_TIMEOUT", "ALERT_WEBHOOK_MAX_ATTEMPTS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0.9, cfg.Planner.Threshold)
	assert.Equal(t, 10*time.Minute, cfg.PlanCacheTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.HookTimeout)
	assert.Equal(t, 4, cfg.AlertWebhookMaxAttempts)
}

func TestLoadPlannerFileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "planner.yaml")
	body := "target_x: 2\ntarget_y: 3\nthreshold: 0.8\ntiebreak_policy: health-desc\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("PLANNER_CONFIG", path)
	t.Setenv("HEALTH_THRESHOLD", "0.75")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Planner{TargetX: 2, TargetY: 3, Threshold: 0.75, TieBreakPolicy: "health-desc"}, cfg.Planner)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("TARGET_X", "east")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TARGET_X")
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("relocation planned", "pairs", 2)
	logger.Debug("hidden")

	assert.Contains(t, stderr.String(), "pairs=2")
	assert.NotContains(t, stderr.String(), "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &rec))
	assert.Equal(t, "relocation planned", rec["msg"])
}

func TestLoadHookAndWebhookSettings(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOOK_TIMEOUT", "750ms")
	t.Setenv("ALERT_WEBHOOK_MAX_ATTEMPTS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.HookTimeout)
	assert.Equal(t, 2, cfg.AlertWebhookMaxAttempts)

	t.Setenv("ALERT_WEBHOOK_MAX_ATTEMPTS", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "ALERT_WEBHOOK_MAX_ATTEMPTS")
}
