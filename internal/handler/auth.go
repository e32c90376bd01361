package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/habitkit/habitkit/internal/ctxkeys"
	"github.com/habitkit/habitkit/internal/model"
	"github.com/habitkit/habitkit/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid registration data")
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if errors.Is(err, service.ErrUserAlreadyExists) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if errors.Is(err, service.ErrInvalidRegistration) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to register user", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    toUserResponse(user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid login data")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to log in user", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// Me echoes the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	respondSuccess(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}
