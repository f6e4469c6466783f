package config_test

import (
	"testing"
	"time"

	"leadboard/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.SourceDB, cfg.LeadSource)
	assert.Equal(t, []string{config.SinkDB}, cfg.StageSinks)
	assert.Equal(t, "1", cfg.ActingUserID)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LEAD_SOURCE", "remote")
	t.Setenv("REMOTE_BASE_URL", "http://crm.local/api/")
	t.Setenv("STAGE_SINKS", "remote, Redis ,,queue")
	t.Setenv("NOTIFY_WORKERS", "8")
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("FETCH_TIMEOUT", "45s")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := config.Load()

	assert.Equal(t, config.SourceRemote, cfg.LeadSource)
	assert.Equal(t, []string{"remote", "redis", "queue"}, cfg.StageSinks)
	assert.Equal(t, 8, cfg.NotifyWorkers)
	assert.Equal(t, 3*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 45*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "http://crm.local/api/leads/status", cfg.RemoteURL(cfg.RemoteStatusPath))
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "leads"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=leads sslmode=disable", cfg.DSN())
	assert.Equal(t, "pgx5://u:p@db:5432/leads?sslmode=disable", cfg.MigrateURL())
}
