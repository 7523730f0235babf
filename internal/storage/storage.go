package storage

import (
	"context"
	"errors"

	"github.com/avelez/taskvault/internal/models"
	usermodel "github.com/avelez/taskvault/internal/models/user"
)

// ErrNotFound indicates the record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness conflict (username or email taken).
var ErrDuplicate = errors.New("record already exists")

type UserStore interface {
	CreateUser(ctx context.Context, u *usermodel.User) error
	GetUserByID(ctx context.Context, id string) (*usermodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, t *models.Task) error
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	// ListTasksByUserID returns the user's tasks in insertion order.
	ListTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id string) error
}
