package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/avelez/taskvault/internal/auth"
	"github.com/avelez/taskvault/internal/config"
	"github.com/avelez/taskvault/internal/handlers"
	"github.com/avelez/taskvault/internal/logger"
	"github.com/avelez/taskvault/internal/middleware"
	"github.com/avelez/taskvault/internal/service"
	"github.com/avelez/taskvault/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Server wires the services, middleware, and routes behind an http.Server.
type Server struct {
	inner *http.Server
	log   *logger.Logger
}

// Options carries the collaborators the server needs. RedisClient is
// optional; when nil the auth routes run without rate limiting.
type Options struct {
	Config      *config.Config
	Users       storage.UserStore
	Tasks       storage.TaskStore
	RedisClient *redis.Client
}

func New(opts Options) *Server {
	log := logger.New("server")

	jwtManager := auth.NewJWTManager(opts.Config.JWT.Secret, opts.Config.JWT.TTL)
	userService := service.NewUserService(opts.Users, jwtManager)
	taskService := service.NewTaskService(opts.Tasks)

	handler := NewRouter(RouterConfig{
		JWTManager:  jwtManager,
		Users:       opts.Users,
		UserService: userService,
		TaskService: taskService,
		RedisClient: opts.RedisClient,
		RateLimit:   opts.Config.RateLimit,
	})

	httpServer := &http.Server{
		Addr:              ":" + opts.Config.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, log: log}
}

type RouterConfig struct {
	JWTManager  *auth.JWTManager
	Users       storage.UserStore
	UserService *service.UserService
	TaskService *service.TaskService
	RedisClient *redis.Client
	RateLimit   config.RateLimitConfig
}

// NewRouter assembles the route table. Split out from New so tests can drive
// the full stack through httptest without binding a port.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := handlers.NewAuthHandler(cfg.UserService)
	taskHandler := handlers.NewTaskHandler(cfg.TaskService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTManager, cfg.Users)

	// Rate limiting guards only the unauthenticated credential routes.
	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.RedisClient == nil {
			return h
		}
		limiter := middleware.NewRateLimiter(cfg.RedisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		return limiter.Middleware(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.Health)

	mux.Handle("POST /auth/register", limited(authHandler.Register))
	mux.Handle("POST /auth/login", limited(authHandler.Login))
	mux.HandleFunc("GET /auth/profile", authMiddleware.RequireAuth(authHandler.GetProfile))

	mux.HandleFunc("POST /api/tasks", authMiddleware.RequireAuth(taskHandler.Create))
	mux.HandleFunc("GET /api/tasks", authMiddleware.RequireAuth(taskHandler.List))
	mux.HandleFunc("PUT /api/tasks/{taskId}", authMiddleware.RequireAuth(taskHandler.Update))
	mux.HandleFunc("DELETE /api/tasks/{taskId}", authMiddleware.RequireAuth(taskHandler.Delete))

	return recoverPanics(mux)
}

// recoverPanics is the top-level boundary: one bad request must never take
// the process down, and no internal detail reaches the client.
func recoverPanics(next http.Handler) http.Handler {
	log := logger.New("recovery")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{
					"status":  "error",
					"message": "Internal Server Error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Start() error {
	s.log.Info("listening on %s", s.inner.Addr)
	return s.inner.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
