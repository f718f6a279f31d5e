package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestClaimFilter verifies the conditional-claim filter carries all three
// guards: coupon identity, no prior claim by the user, and remaining uses.
func TestClaimFilter(t *testing.T) {
	couponID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter := claimFilter(couponID, userID)

	assert.Equal(t, couponID, filter["_id"])
	assert.Equal(t, bson.M{"$ne": userID}, filter["claimedBy"])

	expr, ok := filter["$expr"].(bson.M)
	require.True(t, ok, "filter must carry the size guard")

	lt, ok := expr["$lt"].([]interface{})
	require.True(t, ok)
	require.Len(t, lt, 2)
	assert.Equal(t, bson.M{"$size": "$claimedBy"}, lt[0])
	assert.Equal(t, "$maxUses", lt[1])
}
