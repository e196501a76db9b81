package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// SocietyRoutes sets up the society routes (super admin only)
func SocietyRoutes(r *gin.Engine) {
	society := r.Group("/api/society")
	society.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("super_admin"))
	{
		society.POST("/create", controllers.CreateSociety)
		society.GET("", controllers.GetAllSocieties)
		society.GET("/stats/overview", controllers.GetSocietyStats)
		society.GET("/:id", controllers.GetSocietyByID)
		society.PUT("/:id", controllers.UpdateSociety)
		society.DELETE("/:id", controllers.DeleteSociety)
	}
}
