package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 10, cfg.JWT.AccessExpiration)
	assert.Equal(t, 24, cfg.JWT.RefreshExpiration)
	assert.Equal(t, 5, cfg.Enrich.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Enrich.MaxRedirects)
	assert.True(t, cfg.Enrich.Enabled)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("JWT_ACCESS_SECRET", "a")
	v.Set("JWT_REFRESH_SECRET", "b")
	v.Set("JWT_ACCESS_EXPIRATION_MINUTES", "15")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("ENRICH_ENABLED", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.JWT.AccessExpiration)
	assert.Equal(t, "15m0s", cfg.JWT.AccessTTL().String())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Enrich.Enabled)
}

func TestFromViper_SameSecretRejected(t *testing.T) {
	v := viper.New()
	v.Set("JWT_ACCESS_SECRET", "same")
	v.Set("JWT_REFRESH_SECRET", "same")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
