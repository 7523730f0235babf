package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avelez/taskvault/internal/auth"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/avelez/taskvault/internal/storage"
)

func newUserService() (*UserService, *storage.MemoryUserStore) {
	store := storage.NewMemoryUserStore()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(store, jwtManager), store
}

func registerTestUser(t *testing.T, svc *UserService, username, email string) *usermodel.User {
	t.Helper()
	user, err := svc.Register(context.Background(), usermodel.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "securePassword123",
	})
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return user
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newUserService()

	user := registerTestUser(t, svc, "alice", "alice@example.com")

	if user.ID == "" {
		t.Error("expected server-assigned id")
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Errorf("unexpected user fields: %+v", user)
	}
	if user.PasswordHash == "securePassword123" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	cases := []usermodel.RegisterRequest{
		{Email: "a@example.com", Password: "pw12345678"},
		{Username: "alice", Password: "pw12345678"},
		{Username: "alice", Email: "a@example.com"},
		{Username: "  ", Email: "a@example.com", Password: "pw12345678"},
	}

	for i, req := range cases {
		_, err := svc.Register(ctx, req)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	registerTestUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(ctx, usermodel.RegisterRequest{
		Username: "alice", Email: "new@example.com", Password: "pw12345678",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists for duplicate username, got %v", err)
	}

	_, err = svc.Register(ctx, usermodel.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "pw12345678",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestLogin_AfterRegister(t *testing.T) {
	svc, _ := newUserService()

	registerTestUser(t, svc, "alice", "alice@example.com")

	token, expiresAt, err := svc.Login(context.Background(), usermodel.LoginRequest{
		Username: "alice",
		Password: "securePassword123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	registerTestUser(t, svc, "alice", "alice@example.com")

	_, _, wrongPassword := svc.Login(ctx, usermodel.LoginRequest{
		Username: "alice", Password: "wrongPassword",
	})
	_, _, unknownUser := svc.Login(ctx, usermodel.LoginRequest{
		Username: "nobody", Password: "securePassword123",
	})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Error("wrong-password and unknown-user errors must be identical")
	}
}

func TestGetProfile(t *testing.T) {
	svc, _ := newUserService()

	user := registerTestUser(t, svc, "alice", "alice@example.com")

	profile, err := svc.GetProfile(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username != "alice" || profile.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestGetProfile_VanishedAccount(t *testing.T) {
	svc, store := newUserService()

	user := registerTestUser(t, svc, "alice", "alice@example.com")
	store.DeleteUser(user.ID)

	_, err := svc.GetProfile(context.Background(), user)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
