package main

import (
	"net/http"
	"os"

	"github.com/rowlokie/Civic-Guard/chain"
	"github.com/rowlokie/Civic-Guard/config"
	"github.com/rowlokie/Civic-Guard/controllers"
	"github.com/rowlokie/Civic-Guard/models"
	"github.com/rowlokie/Civic-Guard/routes"
	authUtils "github.com/rowlokie/Civic-Guard/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}

	if err := models.EnsureUserIndexes(config.GetCollection("users")); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := models.EnsureCouponIndex(config.GetCollection("coupons")); err != nil {
		log.Fatalf("Failed to create coupon index: %v", err)
	}

	config.ConnectRedis()

	// Token-ledger client: built once, injected into the controllers. The
	// backend still serves reports without it; on-chain rewards are
	// best-effort.
	rpcURL := os.Getenv("RPC_URL")
	if rpcURL != "" {
		ledger, err := chain.NewUrbanCoin(rpcURL, os.Getenv("CONTRACT_ADDRESS"), os.Getenv("PRIVATE_KEY"))
		if err != nil {
			log.Fatalf("Failed to set up UrbanCoin client: %v", err)
		}
		controllers.SetLedger(ledger)
		log.Info("UrbanCoin client ready")
	} else {
		log.Warn("RPC_URL not set, on-chain rewards disabled")
	}

	if cloudinaryURL := os.Getenv("CLOUDINARY_URL"); cloudinaryURL != "" {
		up, err := authUtils.NewImageUploader(cloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to set up image uploader: %v", err)
		}
		controllers.SetUploader(up)
	} else {
		log.Warn("CLOUDINARY_URL not set, image uploads disabled")
	}

	r := gin.Default()
	r.Use(cors.Default())

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.CouponRoutes(r)
	routes.UserRoutes(r)
	routes.UrbanCoinRoutes(r)
	routes.LocationRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
