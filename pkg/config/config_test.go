package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 90, cfg.ActivityLog.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.ActivityLog.CleanupCron)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 500*time.Millisecond, cfg.DB.SlowQuery)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("WORKING_HOURS_SKIP_PATHS", "/api/public, /api/ping ,")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("DB_SLOW_QUERY_MS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"/api/public", "/api/ping"}, cfg.WorkingHours.SkipPaths)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 5, cfg.DB.MaxConns)
	assert.Zero(t, cfg.DB.SlowQuery)
}

func TestLoad_ProduccionSinSecretoFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "wh", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/wh?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestWorkingHoursConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, WorkingHoursConfig{Timezone: "Local"}.Location())
	assert.Equal(t, time.Local, WorkingHoursConfig{Timezone: "No/Existe"}.Location())
	assert.Equal(t, "UTC", WorkingHoursConfig{Timezone: "UTC"}.Location().String())
}
