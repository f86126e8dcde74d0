package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"users-api/pkg/apperr"
	"users-api/pkg/helpers"
	"users-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth authenticates the request from its Authorization header and injects
// the verified user id into the Gin context. Every failure surfaces as the
// same opaque 401: a missing header, a missing Bearer prefix, a bad signature
// and an expired token are indistinguishable to the caller.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error[any](c, http.StatusUnauthorized, apperr.ErrUnauthenticated.Message, nil)
			c.Abort()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Error[any](c, http.StatusUnauthorized, apperr.ErrUnauthenticated.Message, nil)
			c.Abort()
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, apperr.ErrUnauthenticated.Message, nil)
			c.Abort()
			return
		}
		// The token asserts identity only; resolving the full user record is
		// the handler's job via the store.
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
