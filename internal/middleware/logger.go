package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

var skipPaths = []string{"/health"}

// Logger writes one line per request: method, path, status, latency and the
// authenticated user when there is one. Bodies are never logged; they can
// carry passwords.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range skipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		userID := c.GetString("userID")

		if userID != "" {
			log.Printf("%s %s -> %d (%v) user=%s", c.Request.Method, path, status, latency, userID)
		} else {
			log.Printf("%s %s -> %d (%v)", c.Request.Method, path, status, latency)
		}
	}
}
