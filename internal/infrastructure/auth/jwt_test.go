package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-secret", "bizcompare", 60)

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.Generate("auth|abc", "user@example.com", "Jamie", false)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "auth|abc", claims.AuthID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.False(t, claims.Admin)
	})

	t.Run("admin flag survives", func(t *testing.T) {
		token, err := svc.Generate("auth|root", "ops@example.com", "Ops", true)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.True(t, claims.Admin)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewJWTService("other-secret", "bizcompare", 60)
		token, err := other.Generate("auth|abc", "user@example.com", "Jamie", false)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.Error(t, err)
	})
}
