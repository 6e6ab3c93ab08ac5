package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/edenniyi/shopstack-be/internal/auth"
	"github.com/edenniyi/shopstack-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, name, email, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *bun.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *bun.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.NewSelect().Model(&user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return user, nil
}

// CreateUser registers a new user, hashing their password. It fails with
// ErrEmailTaken when a user with that email already exists, so signup can
// never create a duplicate row.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("u.email = ?", email).
		Exists(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("checking email %s: %w", email, err)
	}
	if exists {
		return models.User{}, models.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err = s.db.NewInsert().Model(&user).Exec(ctx); err != nil {
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}

	// Re-read so the row carries its database-assigned created_at.
	return s.GetUserByID(ctx, user.ID)
}

// AuthenticateUser verifies a user's credentials. Unknown email and wrong
// password both map to ErrInvalidCredentials so a caller cannot probe which
// of the two failed.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := s.db.NewSelect().Model(&user).Where("u.email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("fetching user by email: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, models.ErrInvalidCredentials
	}
	return user, nil
}
