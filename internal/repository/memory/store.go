package memory

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store owns the in-memory user store and exercise log. Both are
// append-only slices kept in insertion order and scanned linearly.
// Construct one per process and hand its repositories to the services.
type Store struct {
	mu        sync.RWMutex
	users     []domain.User
	exercises []domain.Exercise
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Exercises returns the exercise repository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository {
	return &exerciseRepository{store: s}
}

type userRepository struct {
	store *Store
}

// Create appends a user, assigning a fresh id when none is set.
func (r *userRepository) Create(_ context.Context, user *domain.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Seq = int64(len(s.users)) + 1
	s.users = append(s.users, *user)
	return user.ID, nil
}

// GetByID returns the first user whose id matches.
func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(_ context.Context) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

type exerciseRepository struct {
	store *Store
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	exercise.Seq = int64(len(s.exercises)) + 1
	s.exercises = append(s.exercises, cloneExercise(*exercise))
	return nil
}

// GetByUserID filters the whole log by owner, keeping insertion order.
func (r *exerciseRepository) GetByUserID(_ context.Context, userID string) ([]domain.Exercise, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Exercise{}
	for _, ex := range s.exercises {
		if ex.UserID == userID {
			out = append(out, cloneExercise(ex))
		}
	}
	return out, nil
}

func (r *exerciseRepository) Count(_ context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.exercises)), nil
}

// cloneExercise copies the duration so stored records never share memory
// with callers.
func cloneExercise(ex domain.Exercise) domain.Exercise {
	if ex.Duration != nil {
		d := *ex.Duration
		ex.Duration = &d
	}
	return ex
}
