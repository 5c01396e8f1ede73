package handlers

import (
	"context"
	"net/http"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/middleware"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"brixium.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookie  = "token"
	refreshCookie = "refresh_token"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Signup handles customer registration
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var input entities.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Signup(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Signup successful. Please log in.",
		"user":    user,
	})
}

// Login handles customer login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, h.authUsecase.Login)
}

// AdminLogin handles admin console login
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.authUsecase.AdminLogin)
}

func (h *AuthHandler) login(c *gin.Context, fn func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := fn(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if authResponse.AccessToken != "" {
		c.SetCookie(accessCookie, authResponse.AccessToken, 3600*24, "/", "", false, true)
		c.SetCookie(refreshCookie, authResponse.RefreshToken, 3600*24*7, "/", "", false, true)
	}
	response.Success(c, http.StatusOK, authResponse)
}

// Refresh exchanges a refresh token for a new pair. The token is read from the body, then the cookie.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var refreshToken string

	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			logger.Debug(c.Request.Context(), "refresh body not bound", zap.Error(err))
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		if cookie, err := c.Cookie(refreshCookie); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("refresh token is required"))
		return
	}

	tokenPair, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(accessCookie, tokenPair.AccessToken, 3600*24, "/", "", false, true)
	c.SetCookie(refreshCookie, tokenPair.RefreshToken, 3600*24*7, "/", "", false, true)

	response.Success(c, http.StatusOK, tokenPair)
}

// Logout drops the server-side session, if any, and clears the auth cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context(), c.GetHeader(middleware.SessionHeader)); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(accessCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated customer
// GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.authUsecase.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword changes the customer's password
// PUT /api/v1/me/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}
