package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: from-yaml
redis:
  addr: redis:6379
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RABBITMQ_ENABLED", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.RabbitMQ.Enabled)
	// untouched defaults
	assert.Equal(t, "volunteerhub", cfg.Database.DBName)
	assert.Equal(t, 2*time.Hour, Duration(cfg.Redis.CheckoutTTL))
	assert.Equal(t, "http://localhost:8080/api/v1/donations/confirm", cfg.Payment.FinishURL)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"8080\"\n")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "JWT secret is required")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: s\nscheduler:\n  reminder_window: soon\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "scheduler reminder window")
}

func TestSetFieldFromEnv_InvalidInteger(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	cfg := &Config{}

	err := processStructFields(cfg)
	assert.ErrorContains(t, err, "REDIS_DB")
}

func TestPublicURL(t *testing.T) {
	cfg := &Config{}
	cfg.Server.BaseURL = "https://volunteerhub.example/"

	assert.Equal(t, "https://volunteerhub.example/events/3", cfg.PublicURL("/events/3"))
}
