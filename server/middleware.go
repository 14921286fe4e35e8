package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"parlay/models"
	"parlay/ratelimit"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	contextUserID = "userID"
	contextRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity in the request context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextRole, claims.Role)
		c.Next()
	}
}

// AdminOnlyMiddleware re-checks the caller's role against the database on
// each request, so a revoked admin doesn't keep riding an old token.
func AdminOnlyMiddleware(users userGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(contextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID.(int64))
		if err != nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}

// RateLimitMiddleware gates requests by caller identity, falling back to
// client IP before authentication.
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get(contextUserID); exists {
			key = "user:" + strconv.FormatInt(userID.(int64), 10)
		}

		result, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// A broken limiter should not take the API down with it.
			log.WithField("error", err).Warn("Rate limiter check failed")
			c.Next()
			return
		}

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}

// userGetter is the slice of the user service the admin middleware needs
type userGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
