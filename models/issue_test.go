package models_test

import (
	"testing"

	"github.com/rowlokie/Civic-Guard/models"

	"github.com/stretchr/testify/assert"
)

// TestStatusTransitions verifies the workflow is strictly forward.
func TestStatusTransitions(t *testing.T) {
	assert.True(t, models.Pending.CanTransitionTo(models.Verified))
	assert.True(t, models.Verified.CanTransitionTo(models.Resolved))

	assert.False(t, models.Pending.CanTransitionTo(models.Resolved), "skipping Verified must be rejected")
	assert.False(t, models.Verified.CanTransitionTo(models.Pending))
	assert.False(t, models.Resolved.CanTransitionTo(models.Resolved), "no-op re-resolve must be rejected")
	assert.False(t, models.Resolved.CanTransitionTo(models.Pending))
	assert.False(t, models.Resolved.CanTransitionTo(models.Verified))
}

// TestIsValidImageURL verifies the image extension pattern.
func TestIsValidImageURL(t *testing.T) {
	assert.True(t, models.IsValidImageURL(""))
	assert.True(t, models.IsValidImageURL("https://res.cloudinary.com/demo/issues/pothole.jpg"))
	assert.True(t, models.IsValidImageURL("http://example.com/a.webp"))

	assert.False(t, models.IsValidImageURL("https://example.com/a.gif"))
	assert.False(t, models.IsValidImageURL("ftp://example.com/a.png"))
	assert.False(t, models.IsValidImageURL("just-a-name.png"))
}

// TestValidIssueTypes verifies the enum whitelist used by request validation.
func TestValidIssueTypes(t *testing.T) {
	for _, valid := range []string{"Pothole", "Garbage", "Broken Infrastructure", "Sewage", "Drains", "Other"} {
		assert.True(t, models.ValidIssueTypes[valid], valid)
	}
	assert.False(t, models.ValidIssueTypes["pothole"], "types are case-sensitive")
	assert.False(t, models.ValidIssueTypes["Graffiti"])
}
