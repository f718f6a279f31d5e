package routes

import (
	"github.com/rowlokie/Civic-Guard/controllers"

	"github.com/gin-gonic/gin"
)

// LocationRoutes sets up the reverse-geocoding proxy route
func LocationRoutes(r *gin.Engine) {
	location := r.Group("/api/location")
	{
		location.GET("/reverse", controllers.ReverseGeocode)
	}
}
