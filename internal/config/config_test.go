package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/toolbox/internal/client"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TOOLBOX_CONFIG", "PORT", "ENV", "LOG_LEVEL", "JWT_SECRET", "JWT_EXPIRY",
		"HTTP_TIMEOUT", "REQUIRE_AUTH", "PROFILE_FALLBACK", "RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST", "VIACEP_URL", "AWESOMEAPI_URL", "RANDOMUSER_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, client.DefaultEndpoints(), cfg.ClientEndpoints())
	assert.True(t, cfg.EphemeralSecret)
	assert.Len(t, cfg.JWTSecret, devSecretLength)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "custom.yml", []byte(`
port: "9090"
log_level: debug
http_timeout: 3s
rate_limit_rps: 1.5
require_auth: true
endpoints:
  viacep: http://cep.internal
`), 0o644))

	t.Setenv("TOOLBOX_CONFIG", "custom.yml")
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port, "env wins over file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1.5, cfg.RateLimitRPS)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, "http://cep.internal", cfg.Endpoints.ViaCEP)
	assert.Equal(t, client.DefaultAwesomeAPIURL, cfg.Endpoints.AwesomeAPI)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.False(t, cfg.EphemeralSecret)
	assert.Equal(t, "custom.yml", cfg.ConfigFile)
}

func TestLoadRejectsUnknownFileKeys(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultConfigFile, []byte("prot: 1\n"), 0o644))

	_, err := Load(fs)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestLoadProductionWithoutSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err, "commands that never sign tokens must still load")
	assert.True(t, cfg.EphemeralSecret)
	assert.ErrorIs(t, cfg.RequireSecret(), ErrSecretRequired)

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err = Load(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireSecret())
}

func TestRequireSecretOutsideProduction(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireSecret())
}

func TestLoadBadEnvValues(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":     "soon",
		"REQUIRE_AUTH":     "maybe",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "lots",
		"JWT_EXPIRY":       "-",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load(afero.NewMemMapFs())
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port not a number", mutate: func(c *Config) { c.Port = "http" }},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }},
		{name: "zero expiry", mutate: func(c *Config) { c.JWTExpiry = 0 }},
		{name: "zero rps", mutate: func(c *Config) { c.RateLimitRPS = 0 }},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitBurst = 0 }},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, defaults().Validate())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, "production", "warn").Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, "production", "info").Info("shown", "k", "v")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "production logs are JSON")

	buf.Reset()
	NewLogger(&buf, "development", "debug").Debug("dev")
	assert.Contains(t, buf.String(), "msg=dev")

	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
