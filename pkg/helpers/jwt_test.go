package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTManager(t *testing.T) {
	t.Run("valid secret", func(t *testing.T) {
		m, err := NewJWTManager("test-secret", time.Hour, 168*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, m.SessionTTL)
		assert.Equal(t, 168*time.Hour, m.RememberTTL)
	})

	t.Run("empty secret is refused", func(t *testing.T) {
		_, err := NewJWTManager("", time.Hour, 168*time.Hour)
		assert.Error(t, err)
	})
}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour, 168*time.Hour)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, exp, err := m.Issue("user-123", false)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
	})

	t.Run("remember selects the long ttl", func(t *testing.T) {
		_, exp, err := m.Issue("user-123", true)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(168*time.Hour), exp, 5*time.Second)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, mErr := NewJWTManager("test-secret", -time.Minute, 168*time.Hour)
		require.NoError(t, mErr)

		token, _, err := expired.Issue("user-123", false)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, mErr := NewJWTManager("another-secret", time.Hour, 168*time.Hour)
		require.NoError(t, mErr)

		token, _, err := other.Issue("user-123", false)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		// alg=none tokens must never verify
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-123"})
		token, sErr := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, sErr)

		_, err := m.Verify(token)
		assert.Error(t, err)
	})
}
