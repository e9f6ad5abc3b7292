package repository

import (
	"alcyxob/exercise-tracker/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrInsertFailed = RepositoryError("insert failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository is the user store: append-only and insertion ordered.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// ExerciseRepository is the exercise log: append-only and insertion ordered.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	// GetByUserID returns the user's exercises in insertion order.
	GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error)
	Count(ctx context.Context) (int64, error)
}
