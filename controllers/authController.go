package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rowlokie/Civic-Guard/config"
	"github.com/rowlokie/Civic-Guard/models"
	authUtils "github.com/rowlokie/Civic-Guard/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterUser handles user registration
func RegisterUser(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required,max=50"`
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required,min=6"`
		WalletAddress string `json:"walletAddress"`
		Role          string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.RoleReporter
	if input.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.WithError(err).Error("error checking existing user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	user := models.User{
		Name:          input.Name,
		Email:         input.Email,
		Password:      input.Password,
		Role:          role,
		WalletAddress: input.WalletAddress,
		Coins:         0,
		RealBalance:   "0",
		Reports:       []primitive.ObjectID{},
		Validations:   []primitive.ObjectID{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := user.HashPassword(); err != nil {
		log.WithError(err).Error("error hashing password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := userCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		log.WithError(err).Error("error inserting user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      result.InsertedID,
		"message": "User registered",
	})
}

// LoginUser handles user login and issues the session token
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := authUtils.GenerateToken(user.ID.Hex())
	if err != nil {
		log.WithError(err).Error("error generating token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"_id":           user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"walletAddress": user.WalletAddress,
			"role":          user.Role,
			"coins":         user.Coins,
			"realBalance":   user.RealBalance,
		},
	})
}

// GetMe returns the authenticated user's profile. When a wallet is linked
// the on-chain balance is refreshed first and written back on success; a
// failed balance read is rendered as "Error" and never persisted.
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	realBalance := user.RealBalance
	if user.WalletAddress != "" && ledger != nil {
		balance, err := ledger.GetBalance(ctx, user.WalletAddress)
		if err != nil {
			log.WithError(err).WithField("wallet", user.WalletAddress).Error("failed to fetch on-chain balance")
			realBalance = "Error"
		} else {
			realBalance = balance
			_, err = userCollection.UpdateByID(ctx, user.ID, bson.M{
				"$set": bson.M{"realBalance": balance, "updatedAt": time.Now()},
			})
			if err != nil {
				log.WithError(err).Error("failed to persist refreshed balance")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":           user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"walletAddress": user.WalletAddress,
		"coins":         user.Coins,
		"realBalance":   realBalance,
	})
}
