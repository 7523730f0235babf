package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/avelez/taskvault/internal/models"
	usermodel "github.com/avelez/taskvault/internal/models/user"
)

func newTestUser(id, username, email string) *usermodel.User {
	now := time.Now()
	return &usermodel.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestTask(id, userID, title string) *models.Task {
	now := time.Now()
	return &models.Task{
		ID:          id,
		Title:       title,
		Description: "desc",
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMemoryUserStore_CreateAndGet(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()

	u := newTestUser("u1", "alice", "alice@example.com")
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetUserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("expected username 'alice', got '%s'", got.Username)
	}

	if _, err := store.GetUserByUsername(ctx, "alice"); err != nil {
		t.Errorf("expected lookup by username to succeed, got %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, "alice@example.com"); err != nil {
		t.Errorf("expected lookup by email to succeed, got %v", err)
	}
}

func TestMemoryUserStore_DuplicateUsername(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()

	if err := store.CreateUser(ctx, newTestUser("u1", "alice", "alice@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := store.CreateUser(ctx, newTestUser("u2", "alice", "other@example.com"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for duplicate username, got %v", err)
	}

	err = store.CreateUser(ctx, newTestUser("u3", "bob", "alice@example.com"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for duplicate email, got %v", err)
	}
}

func TestMemoryUserStore_NotFound(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryTaskStore_ListPreservesInsertionOrder(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		task := newTestTask(fmt.Sprintf("t%d", i), "u1", fmt.Sprintf("task %d", i))
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tasks, err := store.ListTasksByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.ID != fmt.Sprintf("t%d", i) {
			t.Errorf("expected task t%d at position %d, got %s", i, i, task.ID)
		}
	}
}

func TestMemoryTaskStore_ListScopedToUser(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	store.CreateTask(ctx, newTestTask("t1", "u1", "mine"))
	store.CreateTask(ctx, newTestTask("t2", "u2", "theirs"))

	tasks, err := store.ListTasksByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("expected only u1's task, got %d tasks", len(tasks))
	}
}

func TestMemoryTaskStore_UpdateMissing(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	err := store.UpdateTask(ctx, newTestTask("missing", "u1", "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryTaskStore_DeleteTwice(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	store.CreateTask(ctx, newTestTask("t1", "u1", "gone soon"))

	if err := store.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteTask(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryTaskStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	store.CreateTask(ctx, newTestTask("t1", "u1", "original"))

	got, _ := store.GetTaskByID(ctx, "t1")
	got.Title = "mutated"

	again, _ := store.GetTaskByID(ctx, "t1")
	if again.Title != "original" {
		t.Error("store should not expose internal state to callers")
	}
}
