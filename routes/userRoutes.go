package routes

import (
	"github.com/rowlokie/Civic-Guard/controllers"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the leaderboard route
func UserRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/leaderboard", controllers.GetLeaderboard)
	}
}
