package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RegisterResponse struct {
	Message string              `json:"message"`
	User    UserSummaryResponse `json:"user"`
}

type UserSummaryResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Register godoc
//
//	@Summary		Register a user
//	@Description	Create an account. Username and email must both be unused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handlers.RegisterRequest	true	"Account details"
//	@Success		201	{object}	handlers.RegisterResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Missing fields or user already exists"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, "handlers.Auth.Register", err, "User not found")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User: UserSummaryResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange credentials for a 15 minute access token and a 7 day refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handlers.LoginRequest	true	"Credentials"
//	@Success		200	{object}	handlers.LoginResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Missing fields or invalid credentials"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		writeServiceError(w, "handlers.Auth.Login", err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Revoke a refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handlers.RefreshTokenRequest	true	"Refresh token to revoke"
//	@Success		200	{object}	handlers.MessageResponse	"Logged out"
//	@Failure		400	{object}	handlers.MessageResponse	"Missing or unknown refresh token"
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			writeError(w, http.StatusBadRequest, "Invalid refresh token")
			return
		}
		writeServiceError(w, "handlers.Auth.Logout", err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Refresh godoc
//
//	@Summary		Refresh the access token
//	@Description	Issue a new access token for a stored, unexpired refresh token. The refresh token is not rotated.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handlers.RefreshTokenRequest	true	"Refresh token"
//	@Success		200	{object}	handlers.RefreshResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Missing refresh token"
//	@Failure		403	{object}	handlers.MessageResponse	"Invalid or revoked refresh token"
//	@Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			writeError(w, http.StatusForbidden, "Invalid refresh token")
			return
		}
		writeServiceError(w, "handlers.Auth.Refresh", err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{AccessToken: accessToken})
}
