package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

const (
	ctxIdentityKey  = "identity"
	ctxRealIPKey    = "real_ip"
	ctxRequestIDKey = "request_id"
)

// SetIdentity attaches the authenticated user to the request.
func SetIdentity(c *gin.Context, u helpers.SessionUser) {
	c.Set(ctxIdentityKey, u)
}

// IdentityFrom returns the user attached by Auth.
func IdentityFrom(c *gin.Context) (helpers.SessionUser, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return helpers.SessionUser{}, false
	}
	u, ok := v.(helpers.SessionUser)
	return u, ok
}

// RequestIDFrom returns the id assigned by RequestID, or "".
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}
