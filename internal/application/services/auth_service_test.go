package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/application/services"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

type memoryUserRepo struct {
	nextID int64
	byID   map[int64]*entities.User
	byMail map[string]*entities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		nextID: 1,
		byID:   map[int64]*entities.User{},
		byMail: map[string]*entities.User{},
	}
}

func (m *memoryUserRepo) Create(ctx context.Context, user *entities.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.byID[user.ID] = user
	m.byMail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if user, ok := m.byMail[email]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func newAuthService(ttl time.Duration) *services.AuthService {
	users := services.NewUserService(newMemoryUserRepo())
	return services.NewAuthService(users, "test-secret", "greencycle", ttl)
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	service := newAuthService(time.Hour)

	user, token, err := service.Login(context.Background(), "Alice@Example.com", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)

	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_Login_ReusesExistingUser(t *testing.T) {
	service := newAuthService(time.Hour)

	first, _, err := service.Login(context.Background(), "bob@example.com", "Bob")
	require.NoError(t, err)

	second, _, err := service.Login(context.Background(), "BOB@example.com", "Robert")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Bob", second.Name)
}

func TestAuthService_Verify_RejectsExpiredToken(t *testing.T) {
	service := newAuthService(-time.Minute)

	_, token, err := service.Login(context.Background(), "carol@example.com", "Carol")
	require.NoError(t, err)

	_, err = service.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_Verify_RejectsForeignToken(t *testing.T) {
	issuing := newAuthService(time.Hour)
	verifying := services.NewAuthService(services.NewUserService(newMemoryUserRepo()), "other-secret", "greencycle", time.Hour)

	_, token, err := issuing.Login(context.Background(), "dave@example.com", "Dave")
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_Verify_RejectsGarbage(t *testing.T) {
	service := newAuthService(time.Hour)

	_, err := service.Verify("not.a.token")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestUserService_GetOrCreate_DefaultsName(t *testing.T) {
	users := services.NewUserService(newMemoryUserRepo())

	user, err := users.GetOrCreate(context.Background(), "new@example.com", "  ")

	require.NoError(t, err)
	assert.Equal(t, "Anonymous User", user.Name)
}
