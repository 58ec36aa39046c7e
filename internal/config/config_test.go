package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: "9090"
  mode: debug
database:
  host: db.local
  port: 3307
  user: events
  password: secret
  dbname: eventhub
jwt:
  secret: dev-secret
  expire_hours: 2
rate_limit:
  max_requests: 10
  window_minutes: 5
cors:
  allowed_origins:
    - http://localhost:3000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, sampleConfig)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.True(t, cfg.Database.ParseTime)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TrendingTTL())
	assert.Equal(t, dir, cfg.ConfigDir)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("DATABASE_HOST", "mysql.internal")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "mysql.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("SERVER_MODE", "release")

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is too short")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:      "localhost",
		Port:      3306,
		User:      "root",
		Password:  "pw",
		DBName:    "eventhub",
		Charset:   "utf8mb4",
		ParseTime: true,
	}
	assert.Equal(t, "root:pw@tcp(localhost:3306)/eventhub?charset=utf8mb4&parseTime=true&loc=Local", d.DSN())
}
