package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestSignAndParse(t *testing.T) {
	token, err := SignAccessToken("42", "alice", "user", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "user", claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := SignAccessToken("42", "alice", "user", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	token, err := SignAccessToken("42", "alice", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, testSecret)
	require.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := AccessClaimsFromToken("not-a-jwt", testSecret)
	require.Error(t, err)
}
