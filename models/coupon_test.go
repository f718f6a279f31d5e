package models_test

import (
	"testing"
	"time"

	"github.com/rowlokie/Civic-Guard/models"

	"github.com/stretchr/testify/assert"
)

// TestCouponIsExpired verifies nil expiry means never expires.
func TestCouponIsExpired(t *testing.T) {
	now := time.Now()

	forever := &models.Coupon{}
	assert.False(t, forever.IsExpired(now))

	past := now.Add(-time.Hour)
	expired := &models.Coupon{ExpiryDate: &past}
	assert.True(t, expired.IsExpired(now))

	future := now.Add(time.Hour)
	active := &models.Coupon{ExpiryDate: &future}
	assert.False(t, active.IsExpired(now))
}
