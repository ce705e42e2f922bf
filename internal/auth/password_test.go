package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"miniblog/internal/auth"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("super-secret")
	require.NoError(t, err)
	require.NotEqual(t, "super-secret", hash)

	require.True(t, auth.CheckPassword(hash, "super-secret"))
	require.False(t, auth.CheckPassword(hash, "wrong"))
	require.False(t, auth.CheckPassword("not-a-hash", "super-secret"))
}
