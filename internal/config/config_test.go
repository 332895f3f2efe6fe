package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("OPERATOR_EMAILS", "")
	t.Setenv("ORGANIZER_ONLY_UPDATES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.OrganizerOnlyUpdates)
	assert.Empty(t, cfg.OperatorEmails)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestOperatorList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPERATOR_EMAILS", "admin@example.com, ops@example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.OperatorEmails)
	assert.True(t, cfg.IsOperator("admin@example.com"))
	assert.True(t, cfg.IsOperator("ADMIN@example.com"))
	assert.False(t, cfg.IsOperator("mallory@example.com"))
}

func TestOrganizerOnlyUpdatesFlag(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORGANIZER_ONLY_UPDATES", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.OrganizerOnlyUpdates)
}
