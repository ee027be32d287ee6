package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/pkg/response"
)

// ErrorHandler renders errors pushed with c.Error as a generic 500
// unless a handler already wrote a response.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		logger.WithFields(logrus.Fields{
			"request_id": RequestIDFrom(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).WithError(c.Errors.Last().Err).Error("request failed")

		if !c.Writer.Written() {
			response.Internal(c)
		}
	}
}
