package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// AuthService issues and verifies session tokens. Tokens are HS256 JWTs
// carrying the user id as subject.
type AuthService struct {
	users    *UserService
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// Claims are the JWT claims carried by a session token
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new auth service
func NewAuthService(users *UserService, secret, issuer string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		issuer:   issuer,
		tokenTTL: tokenTTL,
	}
}

// Login resolves the wallet identity to a user row and issues a token.
// The identity payload is trusted; verifying it against the wallet
// provider is out of scope.
func (s *AuthService) Login(ctx context.Context, email, name string) (*entities.User, string, error) {
	user, err := s.users.GetOrCreate(ctx, email, name)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to sign token", err)
	}

	return user, token, nil
}

// Verify parses and validates a token, returning the user id it carries
func (s *AuthService) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return 0, apperrors.NewUnauthorizedError("invalid token claims")
	}

	return claims.UserID, nil
}
