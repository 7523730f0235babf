package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avelez/taskvault/internal/models"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/avelez/taskvault/internal/storage"
	"github.com/google/uuid"
)

type TaskService struct {
	tasks storage.TaskStore
}

func NewTaskService(tasks storage.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, identity *usermodel.User, req models.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "is required"}
	}
	if description == "" {
		return nil, &ValidationError{Field: "description", Reason: "is required"}
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Completed:   req.Completed,
		UserID:      identity.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ListForUser(ctx context.Context, identity *usermodel.User) ([]*models.Task, error) {
	tasks, err := s.tasks.ListTasksByUserID(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies only the supplied fields. Existence is checked before
// ownership so the two failures stay distinct kinds internally.
func (s *TaskService) Update(ctx context.Context, identity *usermodel.User, taskID string, req models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.loadOwned(ctx, identity, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "cannot be empty"}
		}
		task.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, &ValidationError{Field: "description", Reason: "cannot be empty"}
		}
		task.Description = description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = time.Now()

	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, identity *usermodel.User, taskID string) error {
	if _, err := s.loadOwned(ctx, identity, taskID); err != nil {
		return err
	}

	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) loadOwned(ctx context.Context, identity *usermodel.User, taskID string) (*models.Task, error) {
	task, err := s.tasks.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !authorize(identity, task) {
		return nil, ErrNotOwner
	}

	return task, nil
}

// authorize is the single ownership primitive shared by update and delete.
func authorize(identity *usermodel.User, task *models.Task) bool {
	return task.UserID == identity.ID
}
