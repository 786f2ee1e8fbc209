package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/interfaces/http/response"
	"github.com/lawithanx/jcorp/internal/usecases"
)

type AuthService interface {
	Login(ctx context.Context, password string) (*usecases.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// AdminHandler handles admin authentication
type AdminHandler struct {
	authUsecase AuthService
}

func NewAdminHandler(authUsecase AuthService) *AdminHandler {
	return &AdminHandler{authUsecase: authUsecase}
}

type loginInput struct {
	Password string `json:"password" binding:"required"`
}

type logoutInput struct {
	SessionID string `json:"sessionId"`
}

// Login authenticates the admin and issues a token pair
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Password is required"))
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":      true,
		"sessionId":    result.SessionID,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// Logout discards the admin session
// POST /api/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	var input logoutInput
	_ = c.ShouldBindJSON(&input)

	if err := h.authUsecase.Logout(c.Request.Context(), input.SessionID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}
