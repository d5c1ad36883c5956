package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GinLogrus returns a gin middleware that logs completed requests through the
// shared logrus instance, carrying the request ID assigned by
// RequestIDMiddleware.
func GinLogrus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": GetRequestID(c.Request.Context()),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).Round(time.Millisecond),
		})

		msg := c.Request.Method + " " + path
		switch {
		case c.Writer.Status() >= 500:
			entry.Error(msg)
		case c.Writer.Status() >= 400:
			entry.Warn(msg)
		default:
			entry.Info(msg)
		}
	}
}
