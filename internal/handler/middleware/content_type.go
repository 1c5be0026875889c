package middleware

import (
	"net/http"
	"strings"

	"exechire/internal/handler/httperr"
	"exechire/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errUnsupportedMediaType = errs.New("unsupported media type")

// RequireJSON rejects mutating requests whose body is not JSON with 415.
// Bodyless requests (e.g. a cancel with no payload) pass through.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := c.ContentType()
		if !strings.HasPrefix(contentType, "application/json") {
			httperr.AbortWithError(c, http.StatusUnsupportedMediaType, errUnsupportedMediaType,
				"Content-Type must be application/json")
			return
		}

		c.Next()
	}
}
