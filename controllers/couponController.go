package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rowlokie/Civic-Guard/config"
	"github.com/rowlokie/Civic-Guard/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetCoupons lists coupons that are unexpired or never expire.
func GetCoupons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"$or": []bson.M{
			{"expiryDate": nil},
			{"expiryDate": bson.M{"$gte": now}},
		},
	}

	cursor, err := config.GetCollection("coupons").Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode coupons"})
		return
	}

	c.JSON(http.StatusOK, coupons)
}

// AddCoupon creates a new coupon. Admin only; codes are case-normalized to
// uppercase and unique.
func AddCoupon(c *gin.Context) {
	var input struct {
		Code        string     `json:"code" binding:"required"`
		Description string     `json:"description"`
		Discount    float64    `json:"discount" binding:"required,gt=0"`
		MaxUses     int        `json:"maxUses"`
		ExpiryDate  *time.Time `json:"expiryDate"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.MaxUses <= 0 {
		input.MaxUses = 1
	}
	if input.Description == "" {
		input.Description = "Reward coupon"
	}

	coupon := models.Coupon{
		ID:          primitive.NewObjectID(),
		Code:        strings.ToUpper(strings.TrimSpace(input.Code)),
		Description: input.Description,
		Discount:    input.Discount,
		MaxUses:     input.MaxUses,
		ClaimedBy:   []primitive.ObjectID{},
		ExpiryDate:  input.ExpiryDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := config.GetCollection("coupons").InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
			return
		}
		log.WithError(err).Error("failed to insert coupon")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// claimFilter is the conditional-claim filter: it only matches while the
// coupon is unclaimed by the user and len(claimedBy) < maxUses, so the
// check and the claim are a single atomic document update.
func claimFilter(couponID, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":       couponID,
		"claimedBy": bson.M{"$ne": userID},
		"$expr":     bson.M{"$lt": []interface{}{bson.M{"$size": "$claimedBy"}, "$maxUses"}},
	}
}

// ClaimCoupon appends the acting user to the coupon's claim list. Fails if
// the coupon is missing, expired, already claimed by this user, or fully
// claimed; concurrent claims near the maxUses boundary cannot overshoot.
func ClaimCoupon(c *gin.Context) {
	idParam := c.Param("id")
	couponID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	claimerID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	couponCollection := config.GetCollection("coupons")

	var coupon models.Coupon
	err = couponCollection.FindOne(ctx, bson.M{"_id": couponID}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve coupon"})
		}
		return
	}

	if coupon.IsExpired(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon expired"})
		return
	}

	result, err := couponCollection.UpdateOne(ctx,
		claimFilter(couponID, claimerID),
		bson.M{
			"$addToSet": bson.M{"claimedBy": claimerID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		log.WithError(err).Error("failed to claim coupon")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim coupon"})
		return
	}

	if result.ModifiedCount == 0 {
		// The conditional update didn't match: either this user already
		// claimed it or the coupon filled up in the meantime.
		for _, claimed := range coupon.ClaimedBy {
			if claimed == claimerID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Already claimed"})
				return
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon fully claimed"})
		return
	}

	err = couponCollection.FindOne(ctx, bson.M{"_id": couponID}).Decode(&coupon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon claimed!", "coupon": coupon})
}
