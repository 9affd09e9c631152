package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Server.Gzip)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// Desktop config
	assert.Equal(t, "light", cfg.Desktop.Theme)
	assert.Equal(t, int64(1000), cfg.Desktop.StackBase)
	assert.Equal(t, 800, cfg.Desktop.WindowWidth)
	assert.Equal(t, 600, cfg.Desktop.WindowHeight)
	assert.Equal(t, time.Minute, cfg.Desktop.ClockInterval)
	assert.Equal(t, "15:04", cfg.Desktop.ClockFormat)

	assert.Empty(t, cfg.Catalog.Dir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                "9000",
		"HOST":                "127.0.0.1",
		"CORS_ORIGINS":        "http://a.test,http://b.test",
		"LOG_LEVEL":           "debug",
		"LOG_DEV":             "true",
		"RATE_LIMIT_RPS":      "500",
		"RATE_LIMIT_BURST":    "1000",
		"RATE_LIMIT_ENABLED":  "false",
		"DESK_THEME":          "dark",
		"DESK_STACK_BASE":     "10",
		"DESK_CLOCK_INTERVAL": "30s",
		"DESK_TASKBAR_HEIGHT": "48",
		"CATALOG_DIR":         "/etc/skydesk/apps",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	assert.Equal(t, "dark", cfg.Desktop.Theme)
	assert.Equal(t, int64(10), cfg.Desktop.StackBase)
	assert.Equal(t, 30*time.Second, cfg.Desktop.ClockInterval)
	assert.Equal(t, 48, cfg.Desktop.TaskbarHeight)
	assert.Equal(t, "/etc/skydesk/apps", cfg.Catalog.Dir)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 50, cfg.Desktop.NotificationLimit)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown theme", "DESK_THEME", "sepia"},
		{"zero window width", "DESK_WINDOW_WIDTH", "0"},
		{"taskbar taller than viewport", "DESK_TASKBAR_HEIGHT", "5000"},
		{"zero clock interval", "DESK_CLOCK_INTERVAL", "0s"},
		{"malformed number", "DESK_STACK_BASE", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			// LoadOrDefault falls back rather than failing
			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestServerConfig(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		host     string
		wantPort string
		wantHost string
	}{
		{
			name:     "default values",
			wantPort: "8000",
			wantHost: "0.0.0.0",
		},
		{
			name:     "custom port",
			port:     "9000",
			wantPort: "9000",
			wantHost: "0.0.0.0",
		},
		{
			name:     "custom host",
			host:     "localhost",
			wantPort: "8000",
			wantHost: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("PORT")
			os.Unsetenv("HOST")

			if tt.port != "" {
				t.Setenv("PORT", tt.port)
			}
			if tt.host != "" {
				t.Setenv("HOST", tt.host)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantHost, cfg.Server.Host)
		})
	}
}
