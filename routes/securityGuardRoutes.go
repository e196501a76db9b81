package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// SecurityGuardRoutes sets up the security guard routes
func SecurityGuardRoutes(r *gin.Engine) {
	guard := r.Group("/api/security-guard")
	{
		guard.POST("/guard-login", controllers.SecurityGuardLogin)

		admin := guard.Group("")
		admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("community_admin", "super_admin"))
		{
			admin.POST("/create", controllers.CreateSecurityGuard)
			admin.GET("", controllers.GetAllSecurityGuards)
			admin.GET("/stats/overview", controllers.GetSecurityGuardStats)
			admin.GET("/society/:societyId", controllers.GetSecurityGuardsBySociety)
			admin.GET("/:id", controllers.GetSecurityGuardByID)
			admin.PUT("/:id", controllers.UpdateSecurityGuard)
			admin.DELETE("/:id", controllers.DeleteSecurityGuard)
		}
	}
}
