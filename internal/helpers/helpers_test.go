package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)
	assert.True(t, ComparePassword(hash, "Sup3r$ecret"))
	assert.False(t, ComparePassword(hash, "wrong"))
}

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, IsPasswordStrong("Sup3r$ecret"))
	assert.False(t, IsPasswordStrong("short1$"))
	assert.False(t, IsPasswordStrong("alllowercase1$"))
	assert.False(t, IsPasswordStrong("NoSpecials123"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("test-secret", "64f0c7a1b2c3d4e5f6a7b8c9", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c7a1b2c3d4e5f6a7b8c9", claims.UserID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", "64f0c7a1b2c3d4e5f6a7b8c9", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken("test-secret", "64f0c7a1b2c3d4e5f6a7b8c9", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("test-secret", token)
	assert.Error(t, err)
}

func TestRemoveDuplicates(t *testing.T) {
	got := RemoveDuplicates([]string{"music", " music ", "", "tech", "music"})
	assert.Equal(t, []string{"music", "tech"}, got)
}

func TestHaversineKm(t *testing.T) {
	// Same point.
	assert.InDelta(t, 0, HaversineKm(-0.1278, 51.5074, -0.1278, 51.5074), 1e-9)

	// London to Paris is roughly 344 km.
	d := HaversineKm(-0.1278, 51.5074, 2.3522, 48.8566)
	assert.InDelta(t, 344, d, 5)

	// Symmetric.
	assert.InDelta(t, d, HaversineKm(2.3522, 48.8566, -0.1278, 51.5074), 1e-9)
}
