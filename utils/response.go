package utils

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SendResponse writes the standard envelope. Success is derived from the
// status class, never set by hand.
func SendResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: status >= 200 && status < 300,
		Message: message,
		Data:    data,
	})
}
