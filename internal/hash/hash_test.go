package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", h)

	require.True(t, CheckPassword(h, "correct horse battery staple"))
	require.False(t, CheckPassword(h, "wrong password"))
	require.False(t, CheckPassword(h, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("password8chars", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("password8chars", bcrypt.MinCost)
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.True(t, CheckPassword(h1, "password8chars"))
	require.True(t, CheckPassword(h2, "password8chars"))
}

func TestHashPasswordDefaultCost(t *testing.T) {
	h, err := HashPassword("password8chars", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	require.Equal(t, DefaultCost, cost)
}
