package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rowlokie/Civic-Guard/config"
	"github.com/rowlokie/Civic-Guard/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const leaderboardSize = 10

// GetLeaderboard returns the top users by on-chain token balance. Users
// whose balance query fails are omitted rather than shown as zero.
func GetLeaderboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	filter := bson.M{"walletAddress": bson.M{"$exists": true, "$ne": ""}}

	cursor, err := config.GetCollection("users").Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	type entry struct {
		Name          string  `json:"name"`
		Email         string  `json:"email"`
		WalletAddress string  `json:"walletAddress"`
		RealBalance   float64 `json:"realBalance"`
	}

	entries := make([]entry, 0, len(users))
	for _, user := range users {
		if ledger == nil {
			break
		}
		balanceStr, err := ledger.GetBalance(ctx, user.WalletAddress)
		if err != nil {
			log.WithError(err).WithField("wallet", user.WalletAddress).Warn("skipping user in leaderboard")
			continue
		}
		balance, err := strconv.ParseFloat(balanceStr, 64)
		if err != nil {
			continue
		}
		entries = append(entries, entry{
			Name:          user.Name,
			Email:         user.Email,
			WalletAddress: user.WalletAddress,
			RealBalance:   balance,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RealBalance > entries[j].RealBalance
	})

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}

	c.JSON(http.StatusOK, entries)
}
