package modules

import (
	"github.com/gin-gonic/gin"

	handlers "users-api/internal/interface/http"
	"users-api/internal/interface/middleware"
	"users-api/pkg/helpers"
)

// UserModule wires user HTTP handlers and the bearer-token guard into routes.
// Public: POST /api/login
// Protected: POST /api/users, GET /api/users, GET /api/users/:id,
// GET /api/users/search
//
// Account creation sits behind the guard on purpose: only an already
// authenticated caller can register new users.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/users", m.Handler.Create)
		auth.GET("/users", m.Handler.List)
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/users/:id", m.Handler.Get)
	}
}
