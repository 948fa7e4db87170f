package config

import (
	"strings"
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	log := logger.New("config_test")
	longSecret := strings.Repeat("s", minJWTSecretLength)

	testCases := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:      "valid production config",
			config:    Config{ServerPort: 8280, JWTSecret: longSecret, Environment: "production"},
			wantError: false,
		},
		{
			name:      "invalid port",
			config:    Config{ServerPort: 0, JWTSecret: longSecret},
			wantError: true,
		},
		{
			name:      "missing secret",
			config:    Config{ServerPort: 8280},
			wantError: true,
		},
		{
			name:      "short secret outside development",
			config:    Config{ServerPort: 8280, JWTSecret: "short", Environment: "production"},
			wantError: true,
		},
		{
			name:      "short secret allowed in development",
			config:    Config{ServerPort: 8280, JWTSecret: "short", Environment: "development"},
			wantError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.config, log)
			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8281")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("JWT_SECRET", strings.Repeat("x", minJWTSecretLength))
	t.Setenv("ENVIRONMENT", "test")

	config, err := New()

	assert.NoError(t, err)
	assert.Equal(t, 8281, config.ServerPort)
	assert.Equal(t, "localhost", config.DatabaseHost)
	assert.Equal(t, 5432, config.DatabasePort)
	assert.Equal(t, -1, config.DatabaseCacheReset)
	assert.True(t, config.DatabaseAutoMigrate)
	assert.Equal(t, "reefclean", config.JWTIssuer)
}
