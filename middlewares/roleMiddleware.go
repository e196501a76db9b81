package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"societypro-be/utils"
)

// RequireRoles allows the request through only when the authenticated
// principal's role is in the given list. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		role, _ := roleVal.(string)
		if !exists || !allowed[role] {
			utils.SendResponse(c, http.StatusForbidden, "Access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
