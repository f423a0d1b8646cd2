package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"
  allowed_origins:
    - "https://rishiv.dev"

storage:
  type: "aws"
  dynamodb_table: "portfolio"
  aws_region: "us-west-2"

mail:
  enabled: true
  from_email: "noreply@rishiv.dev"
  to_email: "me@rishiv.dev"
  timeout_seconds: 20

rate_limit:
  window_minutes: 10
  max_per_window: 5

assistant:
  enabled: true
  model: "llama3"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"https://rishiv.dev"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "aws", cfg.Storage.Type)
	assert.Equal(t, "portfolio", cfg.Storage.DynamoDBTable)
	assert.Equal(t, "us-west-2", cfg.Storage.AWSRegion)

	assert.True(t, cfg.Mail.Enabled)
	assert.Equal(t, "noreply@rishiv.dev", cfg.Mail.FromEmail)
	assert.Equal(t, "me@rishiv.dev", cfg.Mail.ToEmail)
	assert.Equal(t, 20*time.Second, cfg.Mail.Timeout())

	assert.Equal(t, 10*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 5, cfg.RateLimit.MaxPerWindow)

	assert.True(t, cfg.Assistant.Enabled)
	assert.Equal(t, "llama3", cfg.Assistant.Model)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
mail:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "./data/store", cfg.Storage.LocalPath)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 3, cfg.RateLimit.MaxPerWindow)
	assert.Equal(t, "http://localhost:11435", cfg.Assistant.BaseURL)
	assert.Equal(t, "phi", cfg.Assistant.Model)
	assert.Equal(t, 8*time.Second, cfg.Assistant.Timeout())
	assert.Equal(t, 5, cfg.Knowledge.TopK)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, `
admin:
  secret: "file-secret"
`)

	t.Setenv("ADMIN_SECRET", "env-secret")
	t.Setenv("EMAIL_TO", "inbox@rishiv.dev")
	t.Setenv("DYNAMODB_TABLE", "portfolio-prod")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Admin.Secret)
	assert.Equal(t, "inbox@rishiv.dev", cfg.Mail.ToEmail)
	assert.Equal(t, "portfolio-prod", cfg.Storage.DynamoDBTable)
	assert.Equal(t, "aws", cfg.Storage.Type, "setting the table flips storage to aws")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RateLimit.RedisURL)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}
