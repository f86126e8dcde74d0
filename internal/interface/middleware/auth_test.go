package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/interface/middleware"
	"users-api/pkg/helpers"
)

func protectedRouter(t *testing.T, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(middleware.CtxUserIDKey)})
	})
	return r
}

func TestAuth(t *testing.T) {
	jwtManager, err := helpers.NewJWTManager("test-secret", time.Hour, 168*time.Hour)
	require.NoError(t, err)

	validToken, _, err := jwtManager.Issue("user-123", false)
	require.NoError(t, err)

	expiredManager, err := helpers.NewJWTManager("test-secret", -time.Minute, 168*time.Hour)
	require.NoError(t, err)
	expiredToken, _, err := expiredManager.Issue("user-123", false)
	require.NoError(t, err)

	r := protectedRouter(t, jwtManager)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid bearer token", header: "Bearer " + validToken, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "missing bearer prefix", header: validToken, wantStatus: http.StatusUnauthorized},
		{name: "wrong prefix", header: "Basic " + validToken, wantStatus: http.StatusUnauthorized},
		{name: "empty token after prefix", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				// Every failure is the same opaque message; no sub-check leaks.
				assert.Contains(t, w.Body.String(), "you must be logged in")
			} else {
				assert.Contains(t, w.Body.String(), "user-123")
			}
		})
	}
}
