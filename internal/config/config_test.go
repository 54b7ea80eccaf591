package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	rate, err := cfg.Tax()
	require.NoError(t, err)
	assert.Equal(t, "0.08", rate.String())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("TAX_RATE", "0.18")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	rate, _ := cfg.Tax()
	assert.Equal(t, "0.18", rate.String())
}

func TestValidate(t *testing.T) {
	base := Config{TaxRate: "0.08", JWTSecret: "s", TokenTTL: time.Hour}
	require.NoError(t, base.Validate())

	bad := base
	bad.TaxRate = "1.5"
	assert.Error(t, bad.Validate())

	bad = base
	bad.TaxRate = "abc"
	assert.Error(t, bad.Validate())

	prod := base
	prod.Env = "prod"
	prod.JWTSecret = defaultSecret
	assert.Error(t, prod.Validate())
}
