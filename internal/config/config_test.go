package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "app", DBName: "cofounders", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		JWT: JWTConfig{
			AccessSecret: "0123456789abcdef0123456789abcdef",
			SessionTTL:   time.Hour,
		},
		LinkedIn: LinkedInConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/api/auth/callback"},
		App:      AppConfig{LoginPath: "/signin"},
		Storage:  StorageConfig{Type: "none"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"no db host", func(c *Config) { c.Database.Host = "" }, "database host"},
		{"short secret", func(c *Config) { c.JWT.AccessSecret = "short" }, "at least 32"},
		{"zero ttl", func(c *Config) { c.JWT.SessionTTL = 0 }, "session TTL"},
		{"no linkedin client", func(c *Config) { c.LinkedIn.ClientID = "" }, "LinkedIn client"},
		{"relative login path", func(c *Config) { c.App.LoginPath = "signin" }, "login path"},
		{"login path on onboarding", func(c *Config) { c.App.LoginPath = "/onboarding" }, "collides"},
		{"login path on dashboard", func(c *Config) { c.App.LoginPath = "/dashboard" }, "collides"},
		{"no redis pool", func(c *Config) { c.Redis.PoolSize = 0 }, "pool size"},
		{"s3 without bucket", func(c *Config) { c.Storage.Type = "s3" }, "AWS_S3_BUCKET"},
		{"unknown storage", func(c *Config) { c.Storage.Type = "ftp" }, "unknown storage type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDSNAndAddr(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "host=localhost port=5432 user=app password= dbname=cofounders sslmode=disable", c.Database.GetDSN())
	assert.Equal(t, "localhost:6379", c.Redis.GetAddr())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"/api/", "/static/"}, splitList(" /api/ , ,/static/"))
	assert.Nil(t, splitList(""))
}
