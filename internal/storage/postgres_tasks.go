package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelez/taskvault/internal/database"
	"github.com/avelez/taskvault/internal/models"
	"github.com/jackc/pgx/v5"
)

type PostgresTaskStore struct {
	db *database.DBManager
}

func NewPostgresTaskStore(ctx context.Context, db *database.DBManager) (*PostgresTaskStore, error) {
	s := &PostgresTaskStore{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresTaskStore) migrate(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			user_id TEXT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`
	if _, err := s.db.Write().Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) CreateTask(ctx context.Context, t *models.Task) error {
	const query = `
		INSERT INTO tasks (id, title, description, completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.Write().Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Completed, t.UserID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (s *PostgresTaskStore) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	const query = `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var t models.Task
	err := s.db.Read().QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &t, nil
}

func (s *PostgresTaskStore) ListTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const query = `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.Read().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

func (s *PostgresTaskStore) UpdateTask(ctx context.Context, t *models.Task) error {
	const query = `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5
	`

	tag, err := s.db.Write().Exec(ctx, query,
		t.Title, t.Description, t.Completed, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresTaskStore) DeleteTask(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`

	tag, err := s.db.Write().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
