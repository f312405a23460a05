package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request, tagging admin console traffic apart
// from the customer wizard so the two can be grepped separately.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		area := "cliente"
		if strings.HasPrefix(c.Request.URL.Path, "/admin") {
			area = "admin"
		}

		log.Printf("[HTTP] request_id=%s area=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			area,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
