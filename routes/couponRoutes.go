package routes

import (
	"github.com/rowlokie/Civic-Guard/controllers"
	"github.com/rowlokie/Civic-Guard/middlewares"

	"github.com/gin-gonic/gin"
)

// CouponRoutes sets up the coupon lifecycle routes
func CouponRoutes(r *gin.Engine) {
	coupon := r.Group("/api/coupon")
	{
		coupon.GET("", middlewares.AuthMiddleware(), controllers.GetCoupons)
		coupon.POST("", middlewares.AuthMiddleware(), middlewares.AdminOnly(), controllers.AddCoupon)
		coupon.POST("/claim/:id", middlewares.AuthMiddleware(), controllers.ClaimCoupon)
	}
}
