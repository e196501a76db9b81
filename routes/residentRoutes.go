package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ResidentRoutes sets up the resident routes
func ResidentRoutes(r *gin.Engine) {
	resident := r.Group("/api/resident")
	{
		resident.POST("/resident-login", controllers.ResidentLogin)

		resident.GET("/profile/me",
			middlewares.AuthMiddleware(),
			controllers.GetMyProfile)

		admin := resident.Group("")
		admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("community_admin", "super_admin"))
		{
			admin.POST("/create", controllers.CreateResident)
			admin.GET("", controllers.GetAllResidents)
			admin.GET("/stats/overview", controllers.GetResidentStats)
			admin.GET("/society/:societyId", controllers.GetResidentsBySociety)
			admin.GET("/:id", controllers.GetResidentByID)
			admin.PUT("/:id", controllers.UpdateResident)
			admin.DELETE("/:id", controllers.DeleteResident)
		}
	}
}
