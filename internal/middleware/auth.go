package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avelez/taskvault/internal/auth"
	"github.com/avelez/taskvault/internal/logger"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/avelez/taskvault/internal/storage"
)

type contextKey string

const userKey contextKey = "authenticated_user"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      storage.UserStore
	log        *logger.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users storage.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
		log:        logger.New("auth-middleware"),
	}
}

// RequireAuth verifies the bearer credential, resolves it to a full user
// record, and attaches that identity to the request context. Every failure,
// including a token whose account no longer exists, is a 401 so that a valid
// token never reveals whether an id was ever real.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			unauthorized(w, "Invalid Authorization header format")
			return
		}

		userID, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.log.Debug("token rejected: %v", err)
			unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := m.users.GetUserByID(r.Context(), userID)
		if err != nil {
			if err != storage.ErrNotFound {
				m.log.Error("failed to resolve user %s: %v", userID, err)
			}
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserFrom returns the identity attached by RequireAuth, or nil on routes
// that were not wrapped by it.
func UserFrom(ctx context.Context) *usermodel.User {
	if user, ok := ctx.Value(userKey).(*usermodel.User); ok {
		return user
	}
	return nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"error","message":"` + message + `"}`))
}
