package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"
	"hrbridge/utils"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the resolved request principal.
const PrincipalKey = "principal"

// JWTAuthMiddleware validates the bearer token, rejects revoked tokens, and
// resolves the caller into a Principal stored in the request context. Every
// downstream service call receives this principal explicitly.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Reject tokens revoked via logout.
		tokenHash := utils.HashToken(tokenString)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if n, err := utils.GetAuthCacheClient().Exists(ctx, utils.RevokedTokenPrefix+tokenHash).Result(); err == nil && n > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		sub, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}

		c.Set(PrincipalKey, models.Principal{ID: u.ID, Role: u.Role})
		c.Next()
	}
}

// GetPrincipal returns the principal resolved by JWTAuthMiddleware.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
