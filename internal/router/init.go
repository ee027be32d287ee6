package router

import (
	"time"

	"github.com/oksasatya/go-user-accounts/internal/container"
	handlers "github.com/oksasatya/go-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/internal/router/modules"
)

func limiterFor(c *container.Container) middleware.Limiter {
	l := middleware.Limiter{Redis: c.Redis, Window: time.Minute, Disabled: !c.Config.RateLimitEnabled}
	if c.Config.RateLimitBypassPrivate {
		l.Allow = middleware.AllowPrivateIP()
	}
	return l
}

func healthChecks(c *container.Container) map[string]handlers.Check {
	out := make(map[string]handlers.Check, len(c.Checks))
	for name, check := range c.Checks {
		out[name] = handlers.Check(check)
	}
	return out
}

// InitModules builds handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	limiter := limiterFor(c)

	users := handlers.NewUserHandler(c.Service, c.Logger, c.Config.CookieDomain, c.Config.CookieSecure)
	r.Add(modules.NewUserModule(users, c.JWT, limiter))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks(c))))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
}
