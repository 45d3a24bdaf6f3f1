// Package http 封装 REST 侧的请求处理逻辑。
package http

import (
	"errors"
	"net/http"

	"github.com/Faizhasan01/Inkify-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 封装了与认证相关的 HTTP 处理逻辑。
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例。
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	if authService == nil {
		panic("AuthService cannot be nil for AuthHandler")
	}
	return &AuthHandler{authService: authService}
}

// RegisterRequest 定义注册请求的结构体。
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// Register 处理用户注册请求。
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationFailed) {
			ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("Handler.Register: failed to register user")
		ErrorResponse(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{
		"message":  "User registered successfully",
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// LoginRequest 定义登录请求的结构体。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求，成功时返回 JWT。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			ErrorResponse(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		logrus.WithError(err).Error("Handler.Login: failed to login")
		ErrorResponse(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"token": token})
}
