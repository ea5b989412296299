package app

import (
	"bytes"
	"log/slog"
	"mime"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CSRF_SECRET", "c")
	unsetenv(t, "LOGIN_DELAY", "MOCK_LATENCY_SCALE", "VIEW_RENDER_WAIT", "SHELL_IDLE_TTL", "APP_ADDR", "APP_ENV")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, time.Second, cfg.LoginDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.ViewRenderWait)
	assert.Equal(t, 30*time.Minute, cfg.ShellIdleTTL)
	assert.InDelta(t, 1.0, cfg.MockLatencyScale, 0)
	assert.False(t, cfg.IsProduction())
}

// unsetenv clears keys for the test and restores them afterwards.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{SessionSecret: "s", CSRFSecret: "c", MockLatencyScale: 1}
	require.NoError(t, base.Validate())

	cases := map[string]func(*Config){
		"no session secret": func(c *Config) { c.SessionSecret = "" },
		"no csrf secret":    func(c *Config) { c.CSRFSecret = "" },
		"negative scale":    func(c *Config) { c.MockLatencyScale = -1 },
		"failure above one": func(c *Config) { c.MockFailureRate = 1.5 },
		"failure below 0":   func(c *Config) { c.MockFailureRate = -0.1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoggerLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{LogFormat: "json", LogLevel: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"k":"v"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(&Config{LogLevel: "DEBUG"}))
	assert.Equal(t, slog.LevelWarn, parseLevel(&Config{LogLevel: "warning"}))
	assert.Equal(t, slog.LevelError, parseLevel(&Config{LogLevel: "error"}))
	assert.Equal(t, slog.LevelInfo, parseLevel(&Config{LogLevel: "loud"}))
	assert.Equal(t, slog.LevelInfo, parseLevel(nil))
}

func TestRateLimitLeavesRoomForSkeleton(t *testing.T) {
	assert.Equal(t, 120, rateLimit(nil))
	assert.Equal(t, 180, rateLimit(&Config{SkeletonRefresh: time.Second}))
	assert.Equal(t, 150, rateLimit(&Config{SkeletonRefresh: 2 * time.Second}))
}

func TestTestModeFlag(t *testing.T) {
	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv(testModeEnv, "0")
	RefreshTestMode()
	assert.False(t, InTestMode())

	t.Cleanup(RefreshTestMode)
}

func TestStaticMimeTypes(t *testing.T) {
	for ext := range staticTypes {
		assert.NotEmpty(t, mime.TypeByExtension(ext), ext)
	}
}
