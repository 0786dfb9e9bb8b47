package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/pkg/httperror"
	"github.com/yourplaces/backend/internal/pkg/token"
)

// Auth verifies the bearer token and injects the authenticated user id into
// the request context. OPTIONS preflights pass through untouched so browsers
// can negotiate CORS with the Authorization header. Any failure, whatever
// the cause, surfaces as the same generic 403.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		fields := strings.Fields(authHeader)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			c.Error(httperror.Forbidden("Authentication failed!"))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(fields[1])
		if err != nil {
			c.Error(httperror.Forbidden("Authentication failed!"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
