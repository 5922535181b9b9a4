package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/payload"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/middleware"
	"github.com/vasapolrittideah/devconnector-api/shared/response"
)

// AuthHandler serves registration, login and the current user.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   RequestValidator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUsecase usecase.AuthUsecase, validator RequestValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Register creates an account.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			response.Error(w, http.StatusBadRequest, "User already exists")
		default:
			internalError(w, r, err, "failed to register user")
		}
		return
	}

	response.JSON(w, http.StatusOK, payload.TokenResponse{Token: token})
}

// Login exchanges credentials for a token.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Error(w, http.StatusBadRequest, "Invalid credentials")
		default:
			internalError(w, r, err, "failed to log in user")
		}
		return
	}

	response.JSON(w, http.StatusOK, payload.TokenResponse{Token: token})
}

// Me returns the authenticated user.
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			response.Error(w, http.StatusUnauthorized, middleware.UnauthorizedMessage)
		default:
			internalError(w, r, err, "failed to get current user")
		}
		return
	}

	response.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}
