package utils

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIResponse is the uniform envelope for every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondSuccess sends a standard success response.
func RespondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError sends a standard error response. The raw error is logged
// but never exposed to the client.
func RespondError(c *gin.Context, code int, message string, err error) {
	if err != nil {
		Logger.Error(message, zap.Error(err))
	}
	c.JSON(code, APIResponse{
		Success: false,
		Message: message,
	})
}
