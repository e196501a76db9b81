package routes

import (
	"societypro-be/controllers"
	"societypro-be/middlewares"

	"github.com/gin-gonic/gin"
)

// FreeTrialRoutes sets up the free trial routes
func FreeTrialRoutes(r *gin.Engine) {
	trial := r.Group("/api/free-trial")
	{
		trial.POST("/register", controllers.RegisterFreeTrial)
		trial.GET("/verify-email", controllers.VerifyEmail)
		trial.POST("/verify-email", controllers.VerifyEmail)
		trial.POST("/resend-verification", controllers.ResendVerification)
		trial.POST("/login", controllers.FreeTrialLogin)

		authed := trial.Group("")
		authed.Use(middlewares.AuthMiddleware())
		{
			authed.GET("/profile", controllers.GetFreeTrialProfile)
			authed.PUT("/profile", controllers.UpdateFreeTrialProfile)
			authed.PUT("/change-password", controllers.ChangeFreeTrialPassword)
			authed.GET("/status", controllers.GetTrialStatus)
		}
	}
}
