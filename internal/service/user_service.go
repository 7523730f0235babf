package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avelez/taskvault/internal/auth"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/avelez/taskvault/internal/storage"
	"github.com/google/uuid"
)

type UserService struct {
	users      storage.UserStore
	jwtManager *auth.JWTManager
}

func NewUserService(users storage.UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		users:      users,
		jwtManager: jwtManager,
	}
}

func (s *UserService) Register(ctx context.Context, req usermodel.RegisterRequest) (*usermodel.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "is required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &usermodel.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login resolves the user by username and compares the password hash. Both
// failure paths collapse into ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req usermodel.LoginRequest) (string, time.Time, error) {
	if req.Username == "" || req.Password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, expiresAt, nil
}

// GetProfile re-reads the record behind the authenticated identity. The
// middleware already resolved it, so ErrUserNotFound only fires if the
// account vanished between verification and this lookup.
func (s *UserService) GetProfile(ctx context.Context, identity *usermodel.User) (*usermodel.Profile, error) {
	user, err := s.users.GetUserByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &usermodel.Profile{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
