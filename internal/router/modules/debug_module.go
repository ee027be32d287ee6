package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
)

type DebugModule struct {
	Limiter middleware.Limiter
}

func NewDebugModule(limiter middleware.Limiter) *DebugModule { return &DebugModule{Limiter: limiter} }

// Register exposes expvar counters, rate-limited per IP.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Limiter.Limit(120, middleware.KeyByIP("debug")), gin.WrapH(expvar.Handler()))
}
