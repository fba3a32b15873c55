package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateSessionToken(42, "session-abc", secret, time.Hour)
		require.NoError(t, err)

		claims, err := ParseSessionToken(token, secret)
		require.NoError(t, err)
		assert.EqualValues(t, 42, claims.UserID)
		assert.Equal(t, "session-abc", claims.SessionID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateSessionToken(42, "session-abc", secret, time.Hour)
		require.NoError(t, err)
		_, err = ParseSessionToken(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateSessionToken(42, "session-abc", secret, -time.Minute)
		require.NoError(t, err)
		_, err = ParseSessionToken(token, secret)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseSessionToken("not-a-token", secret)
		assert.Error(t, err)
	})
}
