package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// UserModule wires the account handlers under /users.
// Credential and code endpoints are rate limited per IP; /users/me routes need a session token.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Limiter middleware.Limiter
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, limiter middleware.Limiter) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Limiter: limiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimiter := m.Limiter.Limit(10, middleware.KeyByIP("login"))
	registerLimiter := m.Limiter.Limit(10, middleware.KeyByIP("register"))
	resetInitLimiter := m.Limiter.Limit(5, middleware.KeyByIP("reset"))
	codeLimiter := m.Limiter.Limit(30, middleware.KeyByIPAndPath())

	users := rg.Group("/users")

	users.GET("", m.Handler.List)
	users.POST("", registerLimiter, m.Handler.Register)
	users.GET("/search", m.Handler.Search)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/logout", m.Handler.Logout)
	users.GET("/verify/:code", codeLimiter, m.Handler.VerifyEmail)
	users.POST("/reset_password", resetInitLimiter, m.Handler.RequestPasswordReset)
	users.POST("/reset_password/:code", codeLimiter, m.Handler.ResetPassword)

	me := users.Group("/me")
	me.Use(middleware.Auth(m.JWT))
	{
		me.GET("", m.Handler.Me)
		me.POST("/image", m.Limiter.Limit(20, middleware.KeyByUser("image")), m.Handler.UploadImage)
	}

	users.GET("/:id", m.Handler.Get)
	users.PUT("/:id", m.Handler.Update)
	users.DELETE("/:id", m.Handler.Delete)
}
