package models_test

import (
	"testing"

	"github.com/rowlokie/Civic-Guard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashPassword verifies the plaintext is replaced and verifiable.
func TestHashPassword(t *testing.T) {
	user := &models.User{Password: "s3cret-pass"}

	err := user.HashPassword()
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", user.Password, "plaintext must never be stored")
	assert.True(t, user.ComparePassword("s3cret-pass"))
	assert.False(t, user.ComparePassword("wrong-pass"))
}

// TestIsAdmin verifies the role check.
func TestIsAdmin(t *testing.T) {
	assert.True(t, (&models.User{Role: models.RoleAdmin}).IsAdmin())
	assert.False(t, (&models.User{Role: models.RoleReporter}).IsAdmin())
	assert.False(t, (&models.User{}).IsAdmin())
}
