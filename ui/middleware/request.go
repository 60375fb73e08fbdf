package middleware

import (
	"net/http"
	"time"

	"stokreport/internal"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs method, path, status and latency of every request
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start).Round(time.Microsecond)
		if status >= http.StatusInternalServerError {
			logger.Error("[HTTP] %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
			return
		}
		logger.Debug("[HTTP] %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
	}
}

// LimitBody caps request bodies at maxBytes; zero or less disables the cap
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
