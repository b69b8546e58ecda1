package middleware

import (
	"net/http"
	"strings"

	"glimra/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware authenticates branch admins with the token issued
// by the fleet login endpoint.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		adminID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || adminID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminID", adminID)
		c.Set("isAdmin", true)
		c.Next()
	}
}
