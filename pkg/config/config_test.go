package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30, cfg.Vencimientos.DiasAlerta)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, StoragePostgres, cfg.App.Storage)
}

func TestValidate_Storage(t *testing.T) {
	v := viper.New()
	v.Set("APP_STORAGE", "Memory")
	cfg := fromViper(v)
	assert.Equal(t, StorageMemory, cfg.App.Storage)
	require.NoError(t, cfg.Validate())

	cfg.App.Storage = "redis"
	assert.Error(t, cfg.Validate())
}

func TestFromViper_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("DB_PORT", "6543")
	v.Set("HTTP_PORT", "notanumber")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg := fromViper(v)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un entero inválido conserva el default")
	require.NoError(t, cfg.Validate())
}

func TestValidate_SecretRequeridoFueraDeDevelopment(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	cfg := fromViper(v)

	assert.Error(t, cfg.Validate())

	cfg.App.Env = "development"
	assert.NoError(t, cfg.Validate())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "pm", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/pm?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
