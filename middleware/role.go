package middleware

import (
	"net/http"

	"hrbridge/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates an endpoint to HR/staff callers.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(models.RoleAdmin)
}

// RequireEmployee gates an endpoint to employee callers.
func RequireEmployee() gin.HandlerFunc {
	return requireRole(models.RoleEmployee)
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if p.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this endpoint"})
			return
		}
		c.Next()
	}
}
