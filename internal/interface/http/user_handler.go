package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"users-api/internal/application"
	"users-api/internal/domain/entity"
	"users-api/pkg/apperr"
	"users-api/pkg/response"
	"users-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type createUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
	CPF       int64  `json:"cpf" binding:"required"`
}

// statusOf is the single place translating failure kinds into HTTP statuses.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Unauthenticated, apperr.InvalidCredentials:
		return http.StatusUnauthorized
	case apperr.InvalidInput:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// userJSON shapes a user for responses. The password hash never leaves the API.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"birth_date": u.BirthDate,
		"cpf":        u.CPF,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error[any](c, status, err.Error(), nil)
}

// Login POST /api/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, issue, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":  userJSON(u),
		"token": issue.Token,
	}, "login successful", gin.H{"expires_at": issue.ExpiresAt})
}

// Create POST /api/users (auth required)
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		CPF:       req.CPF,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, userJSON(u), "user created", nil)
}

// Get GET /api/users/:id (auth required)
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "user", nil)
}

// List GET /api/users?count=&skip= (auth required)
func (h *UserHandler) List(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	page, err := h.Svc.ListUsers(c.Request.Context(), count, skip)
	if err != nil {
		h.fail(c, err)
		return
	}

	users := make([]gin.H, 0, len(page.Users))
	for _, u := range page.Users {
		users = append(users, userJSON(u))
	}
	response.Success(c, http.StatusOK, gin.H{
		"users":         users,
		"has_more":      page.HasMore,
		"skipped_users": page.SkippedUsers,
		"total_users":   page.TotalUsers,
	}, "users", nil)
}

// Search GET /api/users/search?q=&size= (auth required)
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", nil)
}
