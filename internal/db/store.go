package db

import (
	"context"                  // Request scoped unit of work
	"errors"                   // Sentinel errors
	"fmt"                      // Error wrapping
	"todo_app/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

var (
	// ErrNotFound is returned when a user or task does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when signup races on the unique username index
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store is the persistence interface used by the workflows.
// Every call runs in its own session bound to ctx, normally the request context.
type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByID(ctx context.Context, id uint) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	ListTasks(ctx context.Context, ownerID uint) ([]domain.Task, error)
	CreateTask(ctx context.Context, task *domain.Task) error
	FindTask(ctx context.Context, id uint) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id uint, status domain.Status) error
	DeleteTask(ctx context.Context, id uint) error

	Ping(ctx context.Context) error
}

// GormStore implements Store on top of a *gorm.DB
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewStore builds a GORM-backed store
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateUser inserts a new user
func (s *GormStore) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindUserByID loads a user by primary key
func (s *GormStore) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "find user")
	}
	return &user, nil
}

// FindUserByUsername loads a user by exact username
func (s *GormStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "find user by username")
	}
	return &user, nil
}

// ListTasks returns the owner's tasks, soonest deadline first
func (s *GormStore) ListTasks(ctx context.Context, ownerID uint) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("deadline asc").
		Order("id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a new task
func (s *GormStore) CreateTask(ctx context.Context, task *domain.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindTask loads a task by primary key regardless of owner
func (s *GormStore) FindTask(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFound(err, "find task")
	}
	return &task, nil
}

// UpdateTaskStatus overwrites the status column; concurrent writers are last-write-wins
func (s *GormStore) UpdateTaskStatus(ctx context.Context, id uint, status domain.Status) error {
	res := s.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update task status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task
func (s *GormStore) DeleteTask(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the underlying connection
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
