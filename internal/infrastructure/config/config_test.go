package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "petroerp", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5, cfg.Sequence.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Sequence.BackoffStep)
	assert.False(t, cfg.Sequence.UseRedis)
	assert.False(t, cfg.IsProduction())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PETROERP_APP_PORT", "9090")
	t.Setenv("PETROERP_SEQUENCE_MAX_ATTEMPTS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 8, cfg.Sequence.MaxAttempts)
}

func TestValidate(t *testing.T) {
	t.Run("rejects default jwt secret in production", func(t *testing.T) {
		cfg := &Config{
			App:      AppConfig{Env: "production"},
			JWT:      JWTConfig{Secret: "change-me"},
			Sequence: SequenceConfig{MaxAttempts: 5},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects zero retry attempts", func(t *testing.T) {
		cfg := &Config{Sequence: SequenceConfig{MaxAttempts: 0}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis sequence store requires redis", func(t *testing.T) {
		cfg := &Config{
			Sequence: SequenceConfig{MaxAttempts: 5, UseRedis: true},
			Redis:    RedisConfig{Enabled: false},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts a sane configuration", func(t *testing.T) {
		cfg := &Config{
			App:      AppConfig{Env: "development"},
			JWT:      JWTConfig{Secret: "change-me"},
			Sequence: SequenceConfig{MaxAttempts: 5},
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", DBName: "erp", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=erp sslmode=disable", cfg.DSN())
}
