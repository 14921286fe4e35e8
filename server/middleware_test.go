package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parlay/models"
	"parlay/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(secret string) *gin.Engine {
	router := gin.New()
	router.GET("/protected", JWTAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetInt64(contextUserID)})
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	router := authRouter(secret)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := GenerateJWT(&models.User{ID: 1, Role: models.RoleUser}, "other-secret")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := GenerateJWT(&models.User{ID: 1, Role: models.RoleUser}, secret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":1`)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewMemoryLimiterWithClock(2, time.Minute, func() time.Time { return now })

	router := gin.New()
	router.GET("/limited", RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit().Code)
	assert.Equal(t, http.StatusOK, hit().Code)

	blocked := hit()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_KeyedByUser(t *testing.T) {
	const secret = "test-secret"
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewMemoryLimiterWithClock(1, time.Minute, func() time.Time { return now })

	// Limiter installed after auth, as on the authenticated route group
	router := gin.New()
	router.GET("/limited", JWTAuthMiddleware(secret), RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	tokenOne, err := GenerateJWT(&models.User{ID: 1, Role: models.RoleUser}, secret)
	require.NoError(t, err)
	tokenTwo, err := GenerateJWT(&models.User{ID: 2, Role: models.RoleUser}, secret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, hit(tokenOne).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(tokenOne).Code)

	// A different user behind the same IP has their own window
	assert.Equal(t, http.StatusOK, hit(tokenTwo).Code)
}
