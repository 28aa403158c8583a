package routes

import (
	"civicassets-be/controllers"
	"civicassets-be/middlewares"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
)

// AssetRoutes sets up the asset routes
func AssetRoutes(r *gin.Engine) {
	assets := r.Group("/api/assets", middlewares.AuthMiddleware())
	{
		assets.GET("", controllers.GetAllAssets)
		assets.GET("/:id", controllers.GetAsset)
		assets.POST("", middlewares.RequireRoles(models.RoleAdmin, models.RoleHOD), controllers.CreateAsset)
		assets.PUT("/:id", middlewares.RequireRoles(models.RoleAdmin, models.RoleHOD, models.RoleTechnician), controllers.UpdateAsset)
		assets.DELETE("/:id", middlewares.RequireRoles(models.RoleAdmin), controllers.DeleteAsset)
	}
}
