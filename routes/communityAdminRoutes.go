package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// CommunityAdminRoutes sets up the community admin routes
func CommunityAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/community-admin")
	{
		admin.POST("/admin-login", controllers.CommunityAdminLogin)

		super := admin.Group("")
		super.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("super_admin"))
		{
			super.POST("/create", controllers.CreateCommunityAdmin)
			super.GET("", controllers.GetAllCommunityAdmins)
			super.GET("/society/:societyId", controllers.GetCommunityAdminsBySociety)
			super.GET("/:id", controllers.GetCommunityAdminByID)
			super.PUT("/:id", controllers.UpdateCommunityAdmin)
			super.DELETE("/:id", controllers.DeleteCommunityAdmin)
		}
	}
}
