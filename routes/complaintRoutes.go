package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the complaint routes
func ComplaintRoutes(r *gin.Engine) {
	complaint := r.Group("/api/complaints")
	complaint.Use(middlewares.AuthMiddleware())
	{
		complaint.POST("/create",
			middlewares.RequireRoles("resident"),
			middlewares.ComplaintRateLimiter(5),
			controllers.CreateComplaint)
		complaint.GET("/my-complaints",
			middlewares.RequireRoles("resident"),
			controllers.GetMyComplaints)
		complaint.GET("/:id", controllers.GetComplaintByID)
		complaint.PUT("/:id/status", controllers.UpdateComplaint)
		complaint.DELETE("/:id", controllers.DeleteComplaint)
	}
}
