package routes

import (
	"github.com/rowlokie/Civic-Guard/controllers"

	"github.com/gin-gonic/gin"
)

// UrbanCoinRoutes sets up the direct token endpoints
func UrbanCoinRoutes(r *gin.Engine) {
	coin := r.Group("/api/urbancoin")
	{
		coin.GET("/balance/:address", controllers.GetCoinBalance)
		coin.POST("/reward", controllers.RewardReporter)
	}
}
