package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// AuthService issues session tokens for wallet identities
type AuthService interface {
	Login(ctx context.Context, email, name string) (*entities.User, string, error)
}

// UserProfileService resolves user profiles
type UserProfileService interface {
	GetByID(ctx context.Context, id int64) (*entities.User, error)
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	auth  AuthService
	users UserProfileService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, users UserProfileService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// CurrentUser handles GET /api/auth/me
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
