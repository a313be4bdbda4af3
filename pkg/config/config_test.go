package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.GeminiModel)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	// DATABASE_URL tiene prioridad sobre los campos sueltos
	cfg := DBConfig{DatabaseURL: "postgres://u:p@db:5432/inv"}
	assert.Equal(t, "postgres://u:p@db:5432/inv", cfg.ConnectionString())

	cfg = DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss word",
		DBName:   "inventario",
		SSLMode:  "disable",
	}
	dsn := cfg.ConnectionString()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%20word") // caracteres especiales codificados
	assert.Contains(t, dsn, "/inventario")
	assert.Contains(t, dsn, "sslmode=disable")
}
