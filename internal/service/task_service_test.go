package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avelez/taskvault/internal/models"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/avelez/taskvault/internal/storage"
)

var (
	alice = &usermodel.User{ID: "user-alice", Username: "alice"}
	bob   = &usermodel.User{ID: "user-bob", Username: "bob"}
)

func newTaskService() *TaskService {
	return NewTaskService(storage.NewMemoryTaskStore())
}

func createTestTask(t *testing.T, svc *TaskService, owner *usermodel.User, title string) *models.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), owner, models.CreateTaskRequest{
		Title:       title,
		Description: "description of " + title,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTaskService()

	task := createTestTask(t, svc, alice, "buy milk")

	if task.ID == "" {
		t.Error("expected server-assigned id")
	}
	if task.Completed {
		t.Error("completed must default to false")
	}
	if task.UserID != alice.ID {
		t.Errorf("expected owner %s, got %s", alice.ID, task.UserID)
	}
	if task.UpdatedAt.Before(task.CreatedAt) {
		t.Error("updatedAt must not precede createdAt")
	}
}

func TestCreate_EmptyFieldsRejected(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	cases := []models.CreateTaskRequest{
		{Title: "", Description: "something"},
		{Title: "something", Description: ""},
		{Title: "   ", Description: "something"},
	}

	for i, req := range cases {
		_, err := svc.Create(ctx, alice, req)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}

	// Nothing may be persisted on a rejected create.
	tasks, err := svc.ListForUser(ctx, alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks persisted, got %d", len(tasks))
	}
}

func TestListForUser_RoundTrip(t *testing.T) {
	svc := newTaskService()

	created := createTestTask(t, svc, alice, "buy milk")

	tasks, err := svc.ListForUser(context.Background(), alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected exactly 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Title != created.Title || got.Description != created.Description {
		t.Errorf("listed task does not match created task: %+v vs %+v", got, created)
	}
}

func TestListForUser_NeverLeaksOtherUsersTasks(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	createTestTask(t, svc, alice, "alice's secret")
	createTestTask(t, svc, bob, "bob's task")

	tasks, err := svc.ListForUser(ctx, bob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, task := range tasks {
		if task.UserID != bob.ID {
			t.Errorf("bob's list contains a task owned by %s", task.UserID)
		}
	}
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task := createTestTask(t, svc, alice, "buy milk")

	completed := true
	updated, err := svc.Update(ctx, alice, task.ID, models.UpdateTaskRequest{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Completed {
		t.Error("expected completed to be true")
	}
	if updated.Title != task.Title || updated.Description != task.Description {
		t.Error("partial update must not touch unset fields")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("updatedAt must advance strictly past createdAt")
	}
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task := createTestTask(t, svc, alice, "buy milk")

	empty := ""
	_, err := svc.Update(ctx, alice, task.ID, models.UpdateTaskRequest{Title: &empty})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestUpdate_MissingTask(t *testing.T) {
	svc := newTaskService()

	title := "new title"
	_, err := svc.Update(context.Background(), alice, "no-such-task", models.UpdateTaskRequest{Title: &title})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdate_OtherUsersTask(t *testing.T) {
	svc := newTaskService()

	task := createTestTask(t, svc, alice, "alice's task")

	title := "hijacked"
	_, err := svc.Update(context.Background(), bob, task.ID, models.UpdateTaskRequest{Title: &title})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestDelete_OtherUsersTask(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task := createTestTask(t, svc, alice, "alice's task")

	if err := svc.Delete(ctx, bob, task.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	// The task must still be there for its owner.
	tasks, _ := svc.ListForUser(ctx, alice)
	if len(tasks) != 1 {
		t.Errorf("expected alice's task to survive, got %d tasks", len(tasks))
	}
}

func TestDelete_Idempotence(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task := createTestTask(t, svc, alice, "short-lived")

	if err := svc.Delete(ctx, alice, task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, alice, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}
