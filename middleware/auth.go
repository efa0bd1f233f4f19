package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"garupa/utils"
)

// IsAuthenticatedRider validates the bearer token on rider endpoints.
// Tokens are issued by the platform's external auth service; this
// middleware only verifies the signature and extracts the rider id —
// identity data itself never lives in this service.
func IsAuthenticatedRider(tokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Please log in to access this content", nil)
			c.Abort()
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>", nil)
			c.Abort()
			return
		}
		tokenStr := parts[1]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(tokenSecret), nil
		})
		if err != nil || !token.Valid {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token", err)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}
		id, ok := claims["id"].(string)
		if !ok || id == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid token payload", nil)
			c.Abort()
			return
		}

		c.Set("riderId", id)
		c.Next()
	}
}

// IsAdmin validates admin access via x-admin-secret header
func IsAdmin(adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminSecret == "" {
			utils.RespondError(c, http.StatusInternalServerError, "Admin access not configured", nil)
			c.Abort()
			return
		}

		headerSecret := c.GetHeader("x-admin-secret")
		if headerSecret == "" || headerSecret != adminSecret {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: Invalid admin credentials", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
