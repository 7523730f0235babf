package storage

import (
	"context"
	"sync"

	"github.com/avelez/taskvault/internal/models"
	usermodel "github.com/avelez/taskvault/internal/models/user"
)

// MemoryUserStore is an in-memory UserStore used by tests and local runs
// without a database.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*usermodel.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*usermodel.User)}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, u *usermodel.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicate
		}
	}

	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *MemoryUserStore) GetUserByID(ctx context.Context, id string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryUserStore) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	return s.find(func(u *usermodel.User) bool { return u.Username == username })
}

func (s *MemoryUserStore) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	return s.find(func(u *usermodel.User) bool { return u.Email == email })
}

func (s *MemoryUserStore) find(match func(*usermodel.User) bool) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteUser removes a user record. It is not part of the UserStore contract;
// tests use it to simulate an account vanishing under a still-valid token.
func (s *MemoryUserStore) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// MemoryTaskStore is an in-memory TaskStore preserving insertion order.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
	order []string
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]*models.Task)}
}

func (s *MemoryTaskStore) CreateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *t
	s.tasks[t.ID] = &copied
	s.order = append(s.order, t.ID)
	return nil
}

func (s *MemoryTaskStore) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *MemoryTaskStore) ListTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, id := range s.order {
		t, ok := s.tasks[id]
		if !ok || t.UserID != userID {
			continue
		}
		copied := *t
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

func (s *MemoryTaskStore) UpdateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	copied := *t
	s.tasks[t.ID] = &copied
	return nil
}

func (s *MemoryTaskStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
