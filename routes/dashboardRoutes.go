package routes

import (
	"civicassets-be/controllers"
	"civicassets-be/middlewares"

	"github.com/gin-gonic/gin"
)

// DashboardRoutes sets up the dashboard routes
func DashboardRoutes(r *gin.Engine) {
	dashboard := r.Group("/api/dashboard", middlewares.AuthMiddleware())
	{
		dashboard.GET("/stats", controllers.GetDashboardStats)
		dashboard.GET("/map-data", controllers.GetMapData)
	}
}
