package routes

import (
	"civicassets-be/controllers"
	"civicassets-be/middlewares"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
)

// ApprovalRoutes sets up the approval workflow routes
func ApprovalRoutes(r *gin.Engine) {
	approvals := r.Group("/api/approvals",
		middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin, models.RoleHOD))
	{
		approvals.GET("/pending", controllers.GetPendingApprovals)
		approvals.PUT("/:id/approve", controllers.ApproveUser)
		approvals.PUT("/:id/reject", controllers.RejectUser)
	}
}
