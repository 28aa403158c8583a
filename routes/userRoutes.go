package routes

import (
	"civicassets-be/controllers"
	"civicassets-be/middlewares"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the user management routes
func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users", middlewares.AuthMiddleware())
	{
		users.GET("", middlewares.RequireRoles(models.RoleAdmin), controllers.GetAllUsers)
		users.GET("/pending-approvals", middlewares.RequireRoles(models.RoleAdmin, models.RoleHOD), controllers.GetPendingApprovals)
		users.GET("/technicians", middlewares.RequireRoles(models.RoleHOD), controllers.GetTechnicians)
		users.PUT("/:id/approve", middlewares.RequireRoles(models.RoleAdmin, models.RoleHOD), controllers.ApproveUser)
		users.PUT("/:id", controllers.UpdateUser)
	}
}
