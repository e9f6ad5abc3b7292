package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
)

// UserService covers the user store operations.
type UserService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser appends a user. Usernames are neither validated nor unique.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{Username: username}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	metrics.UsersCreated.Inc()
	return user, nil
}

// ListUsers returns all users in creation order.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUser resolves id to a user or ErrUserNotFound.
func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return findUser(ctx, s.userRepo, id)
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

func findUser(ctx context.Context, userRepo repository.UserRepository, id string) (*domain.User, error) {
	user, err := userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
