package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// AddExerciseInput carries the raw form values of a new exercise.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string // numeric; empty means 0
	Date        string // optional; empty means now
}

// ExerciseReceipt pairs the stored exercise with its owner.
type ExerciseReceipt struct {
	User     domain.User
	Exercise domain.Exercise
}

// ExerciseService records exercises against existing users.
type ExerciseService interface {
	AddExercise(ctx context.Context, input AddExerciseInput) (*ExerciseReceipt, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

// AddExercise checks the user exists, resolves the date and stores the entry.
// Nothing is written when the user is missing or the input is rejected.
func (s *exerciseService) AddExercise(ctx context.Context, input AddExerciseInput) (*ExerciseReceipt, error) {
	user, err := resolveUser(ctx, s.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	date, err := s.exerciseDate(input.Date)
	if err != nil {
		return nil, err
	}

	duration, err := parseDuration(input.Duration)
	if err != nil {
		return nil, err
	}

	exercise := domain.Exercise{
		UserID:      user.ID,
		Description: input.Description,
		Duration:    duration,
		Date:        date,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, &exercise)
	if err != nil {
		return nil, storageError("create exercise", err)
	}
	exercise.ID = exerciseID
	metrics.RecordExercise()

	return &ExerciseReceipt{User: *user, Exercise: exercise}, nil
}

func (s *exerciseService) exerciseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.now().UTC(), nil
	}
	date, _, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func parseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	duration, err := strconv.ParseFloat(raw, 64)
	// NaN and Inf parse but have no JSON encoding.
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, ErrInvalidDuration
	}
	return duration, nil
}
