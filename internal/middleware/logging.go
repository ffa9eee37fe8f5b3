package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/metrics"
)

// LoggingMiddleware logs each request and records it in the request metrics
func LoggingMiddleware(log logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"latency", latency,
		}

		m.HTTPRequest(c.Request.Method, c.FullPath(), status, latency)

		switch {
		case status >= http.StatusInternalServerError:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			log.Error("Request failed", err, fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request rejected", append(fields, "ua", c.Request.UserAgent())...)
		default:
			log.Info("Request", fields...)
		}
	}
}

// RecoveryMiddleware turns a panicking handler into a 500 response. It must be
// registered after LoggingMiddleware so the failed request is still logged and counted.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic", fmt.Errorf("%v", recovered), "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"timestamp": time.Now(),
		})
	})
}
