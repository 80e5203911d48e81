package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	t.Setenv("MAJEL_BUNDLE_PATH", "bundle.yaml")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10, cfg.DefaultLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "bundle.yaml", cfg.BundlePath)
}

func TestLoadServerConfig_Overrides(t *testing.T) {
	t.Setenv("MAJEL_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/majel")
	t.Setenv("MAJEL_DEFAULT_LIMIT", "25")
	t.Setenv("MAJEL_LOG_LEVEL", "debug")
	t.Setenv("MAJEL_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/majel", cfg.DatabaseURL)
	assert.Equal(t, 25, cfg.DefaultLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadServerConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "no catalog", env: map[string]string{}, wantErr: "DATABASE_URL or MAJEL_BUNDLE_PATH"},
		{name: "bad port", env: map[string]string{"MAJEL_BUNDLE_PATH": "b", "MAJEL_PORT": "0"}, wantErr: "MAJEL_PORT"},
		{name: "unparsable port", env: map[string]string{"MAJEL_BUNDLE_PATH": "b", "MAJEL_PORT": "http"}, wantErr: "parse env"},
		{name: "bad limit", env: map[string]string{"MAJEL_BUNDLE_PATH": "b", "MAJEL_DEFAULT_LIMIT": "-2"}, wantErr: "MAJEL_DEFAULT_LIMIT"},
		{name: "bad level", env: map[string]string{"MAJEL_BUNDLE_PATH": "b", "MAJEL_LOG_LEVEL": "loud"}, wantErr: "MAJEL_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAJEL_BUNDLE_PATH", "")
			t.Setenv("DATABASE_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadServerConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
