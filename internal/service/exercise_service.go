package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LogExerciseInput carries the raw request values; coercion happens here.
type LogExerciseInput struct {
	Description string
	Duration    string
	Date        string // empty means now
}

// LogQuery carries the raw from/to/limit query values. Empty means unset.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// ExerciseService covers the exercise log operations.
type ExerciseService interface {
	LogExercise(ctx context.Context, userID string, in LogExerciseInput) (*domain.User, *domain.Exercise, error)
	GetLog(ctx context.Context, userID string, q LogQuery) (*domain.Log, error)
	CountExercises(ctx context.Context) (int64, error)
}

// ExerciseOptions tune coercion. Zero values give lenient mode, the system
// clock and the local time zone.
type ExerciseOptions struct {
	// Strict rejects input that does not coerce with ErrValidationFailed
	// instead of storing markers.
	Strict   bool
	Now      func() time.Time
	Location *time.Location
}

type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	strict       bool
	now          func() time.Time
	loc          *time.Location
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository, opts ExerciseOptions) ExerciseService {
	s := &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		strict:       opts.Strict,
		now:          opts.Now,
		loc:          opts.Location,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// LogExercise appends an exercise for an existing user. Nothing is written
// when the user is unknown or, in strict mode, when input does not coerce.
func (s *exerciseService) LogExercise(ctx context.Context, userID string, in LogExerciseInput) (*domain.User, *domain.Exercise, error) {
	user, err := findUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, nil, err
	}

	duration, err := s.coerceDuration(in.Duration)
	if err != nil {
		return nil, nil, err
	}
	date, err := s.coerceDate(in.Date)
	if err != nil {
		return nil, nil, err
	}

	exercise := &domain.Exercise{
		UserID:      user.ID,
		Description: in.Description,
		Duration:    duration,
		Date:        date,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, nil, fmt.Errorf("append exercise: %w", err)
	}
	metrics.ExercisesLogged.Inc()
	return user, exercise, nil
}

func (s *exerciseService) coerceDuration(raw string) (*int, error) {
	if s.strict {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: duration %q is not an integer", ErrValidationFailed, raw)
		}
		return &n, nil
	}
	n, err := domain.ParseLeadingInt(raw)
	if err != nil {
		return nil, nil // stored as the not-a-number marker
	}
	return &n, nil
}

func (s *exerciseService) coerceDate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.FormatDate(s.now().In(s.loc)), nil
	}
	t, err := domain.ParseDate(raw, s.loc)
	if err != nil {
		if s.strict {
			return "", fmt.Errorf("%w: date %q is not a calendar date", ErrValidationFailed, raw)
		}
		return domain.InvalidDate, nil
	}
	return domain.FormatDate(t), nil
}

// GetLog returns the user's exercises in insertion order, keeping those
// dated on or after From and on or before To, then the first Limit of them.
func (s *exerciseService) GetLog(ctx context.Context, userID string, q LogQuery) (*domain.Log, error) {
	user, err := findUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("read exercise log: %w", err)
	}

	if q.From != "" {
		exercises, err = s.filterByBound(exercises, "from", q.From, func(d, bound domain.Day) bool { return !d.Before(bound) })
		if err != nil {
			return nil, err
		}
	}
	if q.To != "" {
		exercises, err = s.filterByBound(exercises, "to", q.To, func(d, bound domain.Day) bool { return !d.After(bound) })
		if err != nil {
			return nil, err
		}
	}
	if q.Limit != "" {
		exercises, err = s.applyLimit(exercises, q.Limit)
		if err != nil {
			return nil, err
		}
	}

	metrics.LogRequests.Inc()
	log := domain.NewLog(user, exercises)
	return &log, nil
}

// filterByBound keeps exercises whose stored date satisfies keep. An
// unparseable bound matches nothing in lenient mode, and exercises stored
// with an invalid date never match a bound.
func (s *exerciseService) filterByBound(exercises []domain.Exercise, name, raw string, keep func(d, bound domain.Day) bool) ([]domain.Exercise, error) {
	bound, err := domain.ParseDay(raw, s.loc)
	if err != nil {
		if s.strict {
			return nil, fmt.Errorf("%w: %s %q is not a calendar date", ErrValidationFailed, name, raw)
		}
		return []domain.Exercise{}, nil
	}
	out := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if d, ok := ex.Day(); ok && keep(d, bound) {
			out = append(out, ex)
		}
	}
	return out, nil
}

// applyLimit keeps the first n exercises. A negative n drops the last |n|.
// A limit that is not a number yields an empty log in lenient mode.
func (s *exerciseService) applyLimit(exercises []domain.Exercise, raw string) ([]domain.Exercise, error) {
	var n int
	if s.strict {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: limit %q is not a non-negative integer", ErrValidationFailed, raw)
		}
		n = v
	} else {
		v, err := domain.ParseLeadingInt(raw)
		if err != nil {
			return []domain.Exercise{}, nil
		}
		n = v
	}

	end := n
	if n < 0 {
		end = len(exercises) + n
	}
	if end < 0 {
		end = 0
	}
	if end > len(exercises) {
		end = len(exercises)
	}
	return exercises[:end], nil
}

func (s *exerciseService) CountExercises(ctx context.Context) (int64, error) {
	return s.exerciseRepo.Count(ctx)
}
