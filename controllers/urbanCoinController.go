package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rowlokie/Civic-Guard/chain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GetCoinBalance returns the on-chain token balance for an address.
func GetCoinBalance(c *gin.Context) {
	address := c.Param("address")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Token ledger not configured"})
		return
	}

	balance, err := ledger.GetBalance(ctx, address)
	if err != nil {
		if errors.Is(err, chain.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
			return
		}
		log.WithError(err).Error("failed to get balance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance})
}

// RewardReporter sends tokens from the admin wallet to a reporter address.
func RewardReporter(c *gin.Context) {
	var input struct {
		ToAddress string `json:"toAddress" binding:"required"`
		Amount    int64  `json:"amount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reporter and amount required"})
		return
	}

	if ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Token ledger not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	txHash, err := ledger.RewardCoins(ctx, input.ToAddress, input.Amount)
	if err != nil {
		if errors.Is(err, chain.ErrInvalidAddress) || errors.Is(err, chain.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("reward transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reward transaction failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rewarded successfully", "txHash": txHash})
}
