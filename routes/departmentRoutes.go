package routes

import (
	"civicassets-be/controllers"
	"civicassets-be/middlewares"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
)

// DepartmentRoutes sets up the department routes. Listing is public so the
// signup form can offer the department choices.
func DepartmentRoutes(r *gin.Engine) {
	departments := r.Group("/api/departments")
	{
		departments.GET("", controllers.GetDepartments)
		departments.POST("", middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin), controllers.CreateDepartment)
		departments.PUT("/:id", middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin), controllers.UpdateDepartment)
	}
}
