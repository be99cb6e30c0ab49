package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OFFICIAL_EMAIL", "someone@chitkara.edu.in")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "someone@chitkara.edu.in", cfg.Primary.OfficialEmail)
	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Server.RateLimit)
	assert.Equal(t, DefaultBodyLimit, cfg.Server.BodyLimit)

	assert.Equal(t, DefaultGeminiEndpoint, cfg.Gemini.Endpoint)
	assert.Equal(t, DefaultGeminiTimeout, cfg.Gemini.Timeout)
	assert.Empty(t, cfg.Gemini.APIKey)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "bfhl", cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Empty(t, cfg.Observability.NewRelic.LicenseKey)
}

func TestLoadConfigPlainVariables(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "production", cfg.Primary.Env)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigPrefixedVariablesWin(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BFHL_SERVER.PORT", "9090")
	t.Setenv("BFHL_GEMINI.TIMEOUT", "2s")
	t.Setenv("BFHL_OBSERVABILITY.LOGGING.LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoadConfigRateLimitCanBeDisabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BFHL_SERVER.RATE_LIMIT", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.Server.RateLimit)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing official email",
			env:  map[string]string{"OFFICIAL_EMAIL": ""},
		},
		{
			name: "malformed official email",
			env:  map[string]string{"OFFICIAL_EMAIL": "not-an-email"},
		},
		{
			name: "non numeric port",
			env:  map[string]string{"PORT": "http"},
		},
		{
			name: "bad log level",
			env:  map[string]string{"BFHL_OBSERVABILITY.LOGGING.LEVEL": "verbose"},
		},
		{
			name: "bad endpoint",
			env:  map[string]string{"BFHL_GEMINI.ENDPOINT": "not a url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestObservabilityGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Logging.Level = "error"
	assert.Equal(t, "error", cfg.GetLogLevel())
}
