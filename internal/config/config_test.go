package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Port:            "8420",
		JWTSecret:       "secure-secret-at-least-32-chars-long!!",
		TokenTTLMinutes: 30,
		DBPassword:      "secure-password",
		DBSSLMode:       "require",
		Env:             "development",
		RedisURL:        "localhost:6379",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero token TTL", func(c *Config) { c.TokenTTLMinutes = 0 }, true},
		{"Negative token TTL", func(c *Config) { c.TokenTTLMinutes = -5 }, true},
		{"Short secret allowed in development", func(c *Config) { c.JWTSecret = "short" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Strong production config", func(c *Config) {}, false},
		{"Default JWT secret rejected", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"Short JWT secret rejected", func(c *Config) { c.JWTSecret = "too-short" }, true},
		{"Default DB password rejected", func(c *Config) { c.DBPassword = "password" }, true},
		{"Empty DB password rejected", func(c *Config) { c.DBPassword = "" }, true},
	}

	for _, env := range []string{"production", "prod"} {
		for _, tt := range tests {
			t.Run(env+"/"+tt.name, func(t *testing.T) {
				c := baseConfig()
				c.Env = env
				c.JWTSecret = strings.Repeat("s", 40)
				tt.mutate(c)
				err := c.Validate()
				if tt.expectError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	}
}

func TestTokenTTL(t *testing.T) {
	c := baseConfig()
	c.TokenTTLMinutes = 30
	assert.Equal(t, "30m0s", c.TokenTTL().String())
}
