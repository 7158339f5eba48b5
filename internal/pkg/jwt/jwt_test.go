package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "healthybowl",
		Audience: "healthybowl-users",
		TTL:      ttl,
	})
	require.NoError(t, err)
	return m
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := testManager(t, time.Hour)

	token, err := m.Generate(42, "asha@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.NotEmpty(t, claims.ID, "tokens carry a unique JTI")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager(t, -time.Minute)

	token, err := m.Generate(1, "a@b.com", "customer")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := testManager(t, time.Hour)
	other, err := NewManager(Config{
		Secret:   "other-secret",
		Issuer:   "healthybowl",
		Audience: "healthybowl-users",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	token, err := m.Generate(1, "a@b.com", "customer")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager(t, time.Hour)

	_, err := m.Verify("not-a-token")
	assert.Error(t, err)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}
