package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/tracing"
)

// CORSConfig lists the shell origins allowed to call the REST routes.
// An empty list or "*" allows every origin.
type CORSConfig struct {
	Origins []string
	MaxAge  time.Duration
}

// DefaultCORSConfig allows any shell origin.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Origins: []string{"*"},
		MaxAge:  12 * time.Hour,
	}
}

// CORS lets the browser shell issue window commands and read the trace
// headers set on every response. No credentials are involved.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AddAllowHeaders("Accept", "Accept-Encoding", tracing.TraceHeader, tracing.SpanHeader)
	c.AddExposeHeaders(tracing.TraceHeader, tracing.SpanHeader)
	c.MaxAge = cfg.MaxAge

	if allowsAll(cfg.Origins) {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.Origins
	}
	return cors.New(c)
}

func allowsAll(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
