package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/repository"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
	"github.com/quizdash/quizdash-backend/internal/validator"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /auth/register
// Creates an account. Any role other than "admin" becomes participant.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Error(c, http.StatusBadRequest, msg)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Error(c, http.StatusBadRequest, "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Registration successful",
		"role":    user.Role,
	})
}

// Login godoc
// POST /auth/login
// Validates credentials and returns a signed bearer token plus the
// account's public profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Error(c, http.StatusBadRequest, msg)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.JSON(c, http.StatusOK, model.LoginResponse{
		Token: token,
		User:  user.Info(),
	})
}
