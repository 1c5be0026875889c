package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper: {success, data?, message?}.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success:   status >= 200 && status < 300,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func JSONWithMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success:   status >= 200 && status < 300,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
