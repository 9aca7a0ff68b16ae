package api

import (
	"net/http"
	"strings"

	"github.com/emirhankarahan/flyticket/internal/auth"
	"github.com/gin-gonic/gin"
)

// RequireAdmin short-circuits before any validator or store is touched:
// 401 on a missing/invalid bearer token, 403 when the token is valid but
// not an admin token.
func RequireAdmin(admins auth.AdminUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		claims, err := admins.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}
