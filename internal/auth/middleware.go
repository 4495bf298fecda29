package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// validates service tokens and enforces the required scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		claims, err := ValidateServiceToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		if claims.Scope != scope {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token lacks required scope"})
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)

		c.Next()
	}
}

// extracts the bearer token from the Authorization header, falling back
// to the token query parameter for websocket clients that cannot set
// headers
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}

		return parts[1], true
	}

	if token := c.Query("token"); token != "" {
		return token, true
	}

	return "", false
}

// extracts the token subject from context after RequireScope
func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get("subject")

	if !exists {
		return "", false
	}

	return subject.(string), true
}
