package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1/graphql", cfg.API.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 60, cfg.API.RequestsPerMinute)
	assert.Equal(t, 3*time.Second, cfg.UI.ToastDuration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "profile-tui", cfg.Keyring.Service)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.API.RequestsPerMinute)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `api:
  endpoint: http://localhost:8080/graphql
  timeout: 5s
  requests_per_minute: 10
ui:
  toast_duration: 1500ms
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/graphql", cfg.API.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.API.RequestsPerMinute)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.ToastDuration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "profile-tui", cfg.Keyring.Service)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  endpoint: http://file\n"), 0o600))

	t.Setenv("PROFILE_TUI_API_ENDPOINT", "http://env")
	t.Setenv("PROFILE_TUI_KEYRING_SERVICE", "profile-tui-test")

	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.API.Endpoint)
	assert.Equal(t, "profile-tui-test", cfg.Keyring.Service)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

	_, err := Load(New(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load(New(""))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty endpoint", func(c *Config) { c.API.Endpoint = " " }, "api.endpoint"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"negative rate", func(c *Config) { c.API.RequestsPerMinute = -1 }, "api.requests_per_minute"},
		{"zero toast", func(c *Config) { c.UI.ToastDuration = 0 }, "ui.toast_duration"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty service", func(c *Config) { c.Keyring.Service = "" }, "keyring.service"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(New(""))
	require.NoError(t, err)
	cfg.API.Endpoint = "http://saved"
	cfg.UI.ToastDuration = 7 * time.Second

	require.NoError(t, Save(path, cfg))

	got, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, "http://saved", got.API.Endpoint)
	assert.Equal(t, 7*time.Second, got.UI.ToastDuration)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
}
