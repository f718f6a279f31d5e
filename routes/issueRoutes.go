package routes

import (
	"github.com/rowlokie/Civic-Guard/controllers"
	"github.com/rowlokie/Civic-Guard/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue reporting and moderation routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues")
	{
		issue.POST("/report", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(10), controllers.ReportIssue)
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/regions", controllers.GetRegions)
		issue.PUT("/verify/:id", middlewares.AuthMiddleware(), controllers.VerifyIssue)
		issue.PUT("/resolve/:id", middlewares.AuthMiddleware(), controllers.ResolveIssue)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteIssue)
	}
}
