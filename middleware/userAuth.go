package middleware

import (
	"net/http"
	"strings"

	"glimra/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthUserMiddleware authenticates app users. The token subject becomes
// the userID available to handlers via the context.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
