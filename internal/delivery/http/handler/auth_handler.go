package handler

import (
	"net/http"

	"datacenter-inventory/internal/middleware"
	"datacenter-inventory/internal/usecase/auth"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes adds the unauthenticated login endpoint
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
}

// RegisterProtectedRoutes adds endpoints that need a valid token
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	role, _ := c.Get(middleware.RoleKey)
	roleName, _ := role.(string)

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", auth.UserResponse{
		Username: middleware.GetUsername(c),
		Role:     roleName,
	})
}
