package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter builds route limiters that share one Redis client, window and bypass rule.
// The zero value, or Disabled, yields pass-through handlers.
type Limiter struct {
	Redis    *redis.Client
	Window   time.Duration
	Allow    AllowFunc
	Disabled bool
}

func (l Limiter) Limit(max int, key KeyFunc) gin.HandlerFunc {
	if l.Disabled {
		return RateLimit(nil, 0, 0, nil, nil)
	}
	window := l.Window
	if window <= 0 {
		window = time.Minute
	}
	return RateLimit(l.Redis, max, window, key, l.Allow)
}
