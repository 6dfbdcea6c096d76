package handlers

import (
	"net/http"
	"strings"

	"hrbridge/middleware"
	userService "hrbridge/services/user"
	"hrbridge/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login, logout and profile endpoints.
type AuthHandler struct {
	Service userService.UserService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc userService.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req userService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req userService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing token", "")
		return
	}

	if err := h.Service.Logout(c.Request.Context(), tokenString); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	u, err := h.Service.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
