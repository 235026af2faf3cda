package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const slowRequestThreshold = 2 * time.Second

// RequestID propagates the caller's X-Request-ID or mints a fresh one,
// making it available on the context and echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger writes one line per request: id, method, path, status, latency.
// Requests slower than slowRequestThreshold are tagged so they stand out
// when scanning logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		id := c.GetString("request_id")

		if latency > slowRequestThreshold {
			log.Printf("[%s] %s %s %d %s SLOW", id, c.Request.Method, path, c.Writer.Status(), latency)
			return
		}
		log.Printf("[%s] %s %s %d %s", id, c.Request.Method, path, c.Writer.Status(), latency)
	}
}

// Recovery converts panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
