package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ConfigureProxies sets which peers may supply X-Forwarded-For. An empty list
// trusts none, so c.ClientIP() is the TCP peer. platform selects a header set
// by a fronting CDN ("cloudflare" or "google") and is honoured from any peer.
func ConfigureProxies(engine *gin.Engine, proxies []string, platform string) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := engine.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	switch platform {
	case "":
		engine.TrustedPlatform = ""
	case "cloudflare":
		engine.TrustedPlatform = gin.PlatformCloudflare
	case "google":
		engine.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		return fmt.Errorf("unknown trusted platform %q", platform)
	}
	return nil
}

// RealIP stores c.ClientIP() under "real_ip". Forwarding headers only count
// when ConfigureProxies trusts the sender.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxRealIPKey, c.ClientIP())
		c.Next()
	}
}
