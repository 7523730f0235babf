package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelez/taskvault/internal/auth"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/avelez/taskvault/internal/storage"
)

func newAuthFixture(t *testing.T) (*AuthMiddleware, *storage.MemoryUserStore, *auth.JWTManager) {
	t.Helper()
	users := storage.NewMemoryUserStore()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthMiddleware(jwtManager, users), users, jwtManager
}

func seedUser(t *testing.T, users *storage.MemoryUserStore, id string) {
	t.Helper()
	err := users.CreateUser(context.Background(), &usermodel.User{
		ID:       id,
		Username: "alice",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	mw, users, jwtManager := newAuthFixture(t)
	seedUser(t, users, "user-1")

	token, _, err := jwtManager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var identity *usermodel.User
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		identity = UserFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if identity == nil || identity.ID != "user-1" {
		t.Errorf("expected identity user-1 in context, got %+v", identity)
	}
}

func TestRequireAuth_HeaderFormats(t *testing.T) {
	mw, users, jwtManager := newAuthFixture(t)
	seedUser(t, users, "user-1")

	token, _, _ := jwtManager.GenerateToken("user-1")

	cases := map[string]string{
		"missing header":  "",
		"no bearer":       token,
		"wrong scheme":    "Token " + token,
		"empty credential": "Bearer ",
	}

	for name, header := range cases {
		handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("%s: handler must not run", name)
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestRequireAuth_UnknownUserIs401(t *testing.T) {
	mw, _, jwtManager := newAuthFixture(t)

	// Valid signature, but the account behind it does not exist.
	token, _, _ := jwtManager.GenerateToken("ghost")

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestUserFrom_EmptyContext(t *testing.T) {
	if user := UserFrom(context.Background()); user != nil {
		t.Errorf("expected nil identity, got %+v", user)
	}
}
