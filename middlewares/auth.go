package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecommerce-api/utils"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"

	RoleAdmin = "ADMIN"

	// AdminCookie carries the admin token for the server-rendered dashboard;
	// API clients use the Authorization header instead.
	AdminCookie = "admin_token"
)

// AuthMiddleware accepts a bearer token or the http-only admin cookie and
// stores the verified identity claims on the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := c.Cookie(AdminCookie); err == nil {
			token = cookie
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminOnly gates a route on the ADMIN role claim. It must run after
// AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin only"})
			return
		}
		c.Next()
	}
}
