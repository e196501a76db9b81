package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the super admin auth routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register-super-admin", controllers.RegisterSuperAdmin)
		auth.POST("/super-admin-login", controllers.SuperAdminLogin)
		auth.GET("/dashboard",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles("super_admin"),
			controllers.GetSuperAdminDashboard)
	}
}
