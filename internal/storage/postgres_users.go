package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelez/taskvault/internal/database"
	usermodel "github.com/avelez/taskvault/internal/models/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresUserStore struct {
	db *database.DBManager
}

func NewPostgresUserStore(ctx context.Context, db *database.DBManager) (*PostgresUserStore, error) {
	s := &PostgresUserStore{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresUserStore) migrate(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`
	if _, err := s.db.Write().Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, u *usermodel.User) error {
	const query = `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Write().Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *PostgresUserStore) GetUserByID(ctx context.Context, id string) (*usermodel.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *PostgresUserStore) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	return s.getUser(ctx, "username", username)
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *PostgresUserStore) getUser(ctx context.Context, column, value string) (*usermodel.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, column)

	var u usermodel.User
	err := s.db.Read().QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
