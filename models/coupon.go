package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Coupon is an admin-created reward redeemable by users. A user may claim a
// coupon at most once, and len(ClaimedBy) must never exceed MaxUses; both
// rules are enforced with a single conditional update at claim time.
type Coupon struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Code        string               `bson:"code" json:"code"`
	Description string               `bson:"description" json:"description"`
	Discount    float64              `bson:"discount" json:"discount"`
	MaxUses     int                  `bson:"maxUses" json:"maxUses"`
	ClaimedBy   []primitive.ObjectID `bson:"claimedBy" json:"claimedBy"`
	ExpiryDate  *time.Time           `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsExpired reports whether the coupon had an expiry date in the past.
// A nil ExpiryDate means the coupon never expires.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}

// EnsureCouponIndex creates the unique index on the coupon code.
func EnsureCouponIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
