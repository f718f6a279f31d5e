package authUtils_test

import (
	"testing"

	authUtils "github.com/rowlokie/Civic-Guard/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenRoundTrip verifies that a generated token parses back to the
// same user ID.
func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := authUtils.GenerateToken("64f1c0ffee0000000000abcd")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := authUtils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000abcd", userID)
}

// TestGenerateToken_MissingSecret verifies the configuration guard.
func TestGenerateToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := authUtils.GenerateToken("some-user")
	assert.Error(t, err)
}

// TestParseToken_WrongSecret verifies that a token signed under a different
// secret is rejected.
func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := authUtils.GenerateToken("some-user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = authUtils.ParseToken(token)
	assert.Error(t, err)
}

// TestParseToken_Garbage verifies rejection of malformed input.
func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := authUtils.ParseToken("not.a.token")
	assert.Error(t, err)
}
