package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("UPSTREAM_API_KEY", "key-123")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "admin-portal", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "https://api.example.com/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.HealthTimeout())
	assert.Equal(t, PrincipalStoreStatic, cfg.Auth.PrincipalStore)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_COOKIE_SECURE", "false")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
	t.Setenv("UPSTREAM_HEALTH_TIMEOUT_SECONDS", "2")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 12, cfg.Auth.BcryptCost, "unparsable ints fall back to the default")
	assert.Equal(t, 2*time.Second, cfg.Upstream.HealthTimeout())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_DB", "x")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.Upstream.BaseURL = "" }, wantErr: "UPSTREAM_BASE_URL"},
		{name: "missing api key", mutate: func(c *Config) { c.Upstream.APIKey = "" }, wantErr: "UPSTREAM_API_KEY"},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "AUTH_JWT_SECRET"},
		{name: "unknown store", mutate: func(c *Config) { c.Auth.PrincipalStore = "ldap" }, wantErr: "ldap"},
		{name: "postgres store without dsn", mutate: func(c *Config) { c.Auth.PrincipalStore = PrincipalStorePostgres }, wantErr: "POSTGRES_DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Auth:     AuthConfig{JWTSecret: "s", PrincipalStore: PrincipalStoreStatic},
				Upstream: UpstreamConfig{BaseURL: "https://api.example.com", APIKey: "k"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
