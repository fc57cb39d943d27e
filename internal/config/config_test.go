package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mistral", cfg.LLM.DefaultProvider)
	assert.Equal(t, "mistral-embed", cfg.Embedding.Model)
	assert.True(t, cfg.Embedding.FallbackEnabled)
	assert.Equal(t, 6, cfg.Embedding.RetryAttempts)
	assert.Equal(t, "legal_documents", cfg.Ingest.Collection)
	assert.Equal(t, 10, cfg.Ingest.BatchSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EMBEDDING_FALLBACK_ENABLED", "false")
	t.Setenv("API_KEYS", "k1, k2 ,k3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Embedding.FallbackEnabled)
	assert.Equal(t, []string{"k1", "k2", "k3"}, cfg.Auth.APIKeys)
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.Database.URL = "postgres://localhost/lexrag"
	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestAddr(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "127.0.0.1", Port: 8081}}
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
}
