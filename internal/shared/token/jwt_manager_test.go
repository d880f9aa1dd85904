package token

import (
	"testing"
	"time"

	"github.com/sample1/member-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "member-api-test"},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        time.Hour,
			RefreshExpiry: 24 * time.Hour,
		},
	})
}

func TestGenerateAndValidate(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken("admin")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.OperatorID)
	assert.Equal(t, ACCESS, claims.TokenType)

	claims, err = m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, REFRESH, claims.TokenType)
}

func TestValidate_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.GenerateAccessToken("admin")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidate_WrongSecretOrGarbage(t *testing.T) {
	m := newTestManager()
	token, err := m.GenerateAccessToken("admin")
	require.NoError(t, err)

	other := newTestManager()
	other.secret = []byte("another-secret-key-that-is-also-long-enough")

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_MissingOperator(t *testing.T) {
	m := newTestManager()
	token, err := m.GenerateAccessToken("")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidClaims)
}
