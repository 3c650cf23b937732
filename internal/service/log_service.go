package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"strconv"
	"strings"
)

// DefaultLogLimit caps a log when no usable limit is supplied.
const DefaultLogLimit = 500

// LogQuery carries the raw query parameters of a log request.
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// LogService answers activity log queries.
type LogService interface {
	GetLogs(ctx context.Context, query LogQuery) (*domain.ExerciseLog, error)
}

type logService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository) LogService {
	return &logService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
	}
}

// GetLogs returns the user's exercises within the optional inclusive date
// range, capped at the resolved limit. Count is the size of the returned log.
func (s *logService) GetLogs(ctx context.Context, query LogQuery) (*domain.ExerciseLog, error) {
	user, err := resolveUser(ctx, s.userRepo, query.UserID)
	if err != nil {
		return nil, err
	}

	filter, err := buildExerciseFilter(user, query)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.Find(ctx, filter)
	if err != nil {
		return nil, storageError("find exercises", err)
	}

	entries := make([]domain.LogEntry, 0, len(exercises))
	for i := range exercises {
		entries = append(entries, exercises[i].ToLogEntry())
	}
	metrics.ObserveLogSize(len(entries))

	return &domain.ExerciseLog{
		User:  *user,
		Count: len(entries),
		Log:   entries,
	}, nil
}

func buildExerciseFilter(user *domain.User, query LogQuery) (repository.ExerciseFilter, error) {
	filter := repository.ExerciseFilter{
		UserID: user.ID,
		Limit:  ParseLimit(query.Limit),
	}

	if strings.TrimSpace(query.From) != "" {
		from, _, err := domain.ParseDate(query.From)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.From = &from
	}

	if strings.TrimSpace(query.To) != "" {
		to, dateOnly, err := domain.ParseDate(query.To)
		if err != nil {
			return filter, ErrInvalidDate
		}
		// A bare date includes the whole of that day.
		if dateOnly {
			to = domain.EndOfDay(to)
		}
		filter.To = &to
	}

	return filter, nil
}

// ParseLimit reads a positive integer limit. Anything else, including an
// absent or non-numeric value, falls back to DefaultLogLimit.
func ParseLimit(raw string) int64 {
	limit, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || limit <= 0 {
		return DefaultLogLimit
	}
	return limit
}
