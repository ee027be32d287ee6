package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-accounts/pkg/validation"
)

// ErrorBody is the {"error": ...} shape used for credential and server failures.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageBody is the {"message": ...} shape used for code failures.
type MessageBody struct {
	Message string `json:"message"`
}

func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

func Message(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, MessageBody{Message: message})
}

// Invalid renders a 400 with per-field binding details.
func Invalid(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Error:   "Invalid payload",
		Details: validation.ToDetails(err),
	})
}

// InvalidField renders a 400 for a single field rejected after binding.
func InvalidField(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Error:   "Invalid payload",
		Details: map[string]string{field: message},
	})
}

// Empty aborts with a status code and no body.
func Empty(c *gin.Context, status int) {
	c.AbortWithStatus(status)
}

func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}
