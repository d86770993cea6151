package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query, args, err := a.db.Insert("users").Rows(goqu.Record{
		"email":      user.Email,
		"name":       user.Name,
		"created_at": user.CreatedAt,
	}).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query, args, err := a.db.Select("id", "email", "name", "created_at").
		From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := a.db.Select("id", "email", "name", "created_at").
		From("users").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}
