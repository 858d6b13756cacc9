package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/account-service/internal/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashing the same password twice yields different hashes", func(t *testing.T) {
		first, err := auth.HashPassword("secret1", bcrypt.MinCost)
		require.NoError(t, err)
		second, err := auth.HashPassword("secret1", bcrypt.MinCost)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.NoError(t, auth.VerifyPassword(first, "secret1"))
		assert.NoError(t, auth.VerifyPassword(second, "secret1"))
	})

	t.Run("applies default cost when none configured", func(t *testing.T) {
		hash, err := auth.HashPassword("secret1", 0)
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, auth.DefaultBcryptCost, cost)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("accepts the original password", func(t *testing.T) {
		assert.NoError(t, auth.VerifyPassword(hash, "secret1"))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		assert.ErrorIs(t, auth.VerifyPassword(hash, "secret2"), auth.ErrPasswordMismatch)
	})

	t.Run("rejects a malformed stored hash", func(t *testing.T) {
		assert.ErrorIs(t, auth.VerifyPassword("not-a-bcrypt-hash", "secret1"), auth.ErrPasswordMismatch)
	})

	t.Run("rejects an empty stored hash", func(t *testing.T) {
		assert.ErrorIs(t, auth.VerifyPassword("", "secret1"), auth.ErrPasswordMismatch)
	})
}
