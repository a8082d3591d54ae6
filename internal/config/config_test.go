package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 2, cfg.Junta.AutoCloseAfterDays)
	assert.Equal(t, "America/Lima", cfg.Location().String())
	assert.Equal(t, 168*time.Hour, cfg.GetReportCacheTTL())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:yunta.db")
	t.Setenv("JUNTA_TIMEZONE", "UTC")
	t.Setenv("AUTO_CLOSE_AFTER_DAYS", "0")
	t.Setenv("HEALTH_CHECK_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 0, cfg.Junta.AutoCloseAfterDays)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, 2*time.Second, cfg.GetHealthTimeout())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080", ReadTimeout: "1s", WriteTimeout: "1s"},
			Database: DatabaseConfig{Driver: DriverSQLite, URL: "file:x.db", ConnMaxLifetime: "1m"},
			Redis:    RedisConfig{TTL: "1h"},
			Junta:    JuntaConfig{Timezone: "UTC", AutoCloseAfterDays: 1},
			Health:   HealthConfig{Timeout: "1s"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "SERVER_PORT"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "DATABASE_DRIVER"},
		{name: "bad zone", mutate: func(c *Config) { c.Junta.Timezone = "Mars/Olympus" }, wantErr: "JUNTA_TIMEZONE"},
		{name: "negative auto close", mutate: func(c *Config) { c.Junta.AutoCloseAfterDays = -1 }, wantErr: "AUTO_CLOSE_AFTER_DAYS"},
		{name: "bad duration", mutate: func(c *Config) { c.Redis.TTL = "soon" }, wantErr: "REPORT_CACHE_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

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
