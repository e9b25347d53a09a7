package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrationValid(t *testing.T) {
	email, errs := Registration("User@Example.com ", "password8chars")
	require.Empty(t, errs)
	require.Equal(t, "user@example.com", email)
}

func TestRegistrationBadEmail(t *testing.T) {
	_, errs := Registration("pas-un-email", "password8chars")
	require.Len(t, errs, 1)
	require.Equal(t, "email", errs[0].Field)
	require.Contains(t, errs[0].Message, "email")
}

func TestRegistrationShortPassword(t *testing.T) {
	_, errs := Registration("valid@example.com", "short")
	require.Len(t, errs, 1)
	require.Equal(t, "password", errs[0].Field)
	require.Contains(t, errs[0].Message, "8 characters")
}

func TestRegistrationAccumulatesViolations(t *testing.T) {
	_, errs := Registration("bad", "x")
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "password")
}
