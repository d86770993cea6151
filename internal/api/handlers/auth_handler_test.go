package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/api/handlers"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

type stubAuthService struct {
	user  *entities.User
	token string
	err   error
}

func (s *stubAuthService) Login(ctx context.Context, email, name string) (*entities.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, s.token, nil
}

type stubUserProfileService struct {
	user *entities.User
	err  error
}

func (s *stubUserProfileService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return s.user, s.err
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns user and token", func(t *testing.T) {
		service := &stubAuthService{
			user:  &entities.User{ID: 3, Email: "alice@example.com", Name: "Alice"},
			token: "signed.jwt.token",
		}
		handler := handlers.NewAuthHandler(service, &stubUserProfileService{})

		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"alice@example.com","name":"Alice"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			User  entities.User `json:"user"`
			Token string        `json:"token"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "alice@example.com", response.User.Email)
		assert.Equal(t, "signed.jwt.token", response.Token)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{}, &stubUserProfileService{})

		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"name":"Alice"}`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{}, &stubUserProfileService{})

		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`not json`))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	t.Run("returns the authenticated profile", func(t *testing.T) {
		users := &stubUserProfileService{user: &entities.User{ID: 7, Email: "alice@example.com", Name: "Alice"}}
		handler := handlers.NewAuthHandler(&stubAuthService{}, users)

		req := authedRequest("GET", "/api/auth/me", "", 7)
		w := httptest.NewRecorder()

		handler.CurrentUser(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var user entities.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubAuthService{}, &stubUserProfileService{})

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		w := httptest.NewRecorder()

		handler.CurrentUser(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
