package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, accessTTL, refreshTTL time.Duration) TokenManager {
	t.Helper()
	tm, err := NewTokenManager("access-secret", "refresh-secret", accessTTL, refreshTTL)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRequiresSecrets(t *testing.T) {
	_, err := NewTokenManager("", "refresh", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("access", "", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestGenerateAndVerifyPair(t *testing.T) {
	tm := newTestManager(t, 15*time.Minute, 14*24*time.Hour)

	pair, err := tm.GeneratePair("64b2f0c8e4b0a1a2b3c4d5e6", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := tm.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "64b2f0c8e4b0a1a2b3c4d5e6", access.Subject)
	assert.Equal(t, "ADMIN", access.Role)

	refresh, err := tm.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "64b2f0c8e4b0a1a2b3c4d5e6", refresh.Subject)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	tm := newTestManager(t, 15*time.Minute, 14*24*time.Hour)

	pair, err := tm.GeneratePair("64b2f0c8e4b0a1a2b3c4d5e6", "USER")
	require.NoError(t, err)

	_, err = tm.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err, "refresh token must not pass access verification")

	_, err = tm.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err, "access token must not pass refresh verification")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tm := newTestManager(t, 15*time.Minute, time.Hour)
	other, err := NewTokenManager("different-secret", "different-refresh", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := tm.GeneratePair("64b2f0c8e4b0a1a2b3c4d5e6", "USER")
	require.NoError(t, err)

	_, err = other.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := newTestManager(t, -time.Minute, -time.Minute)

	pair, err := tm.GeneratePair("64b2f0c8e4b0a1a2b3c4d5e6", "USER")
	require.NoError(t, err)

	_, err = tm.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	_, err := tm.VerifyAccess("not-a-jwt")
	assert.Error(t, err)
}
