package routes

import (
	"civicassets-be/controllers"
	"civicassets-be/middlewares"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the complaint routes. Creation is rate limited
// per citizen through Redis.
func ComplaintRoutes(r *gin.Engine) {
	complaints := r.Group("/api/complaints", middlewares.AuthMiddleware())
	{
		complaints.GET("", controllers.GetAllComplaints)
		complaints.GET("/:id", controllers.GetComplaint)
		complaints.POST("",
			middlewares.RequireRoles(models.RoleCitizen),
			middlewares.ComplaintRateLimiter(10),
			controllers.CreateComplaint)
		complaints.PUT("/:id/assign", middlewares.RequireRoles(models.RoleHOD, models.RoleAdmin), controllers.AssignComplaint)
		complaints.PUT("/:id/status", controllers.UpdateComplaintStatus)
		complaints.POST("/:id/maintenance-log", middlewares.RequireRoles(models.RoleTechnician), controllers.AddMaintenanceLog)
	}
}
