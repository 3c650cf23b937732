// Package memory is an in-process record store for local development and tests.
// It keeps insertion order, which stands in for MongoDB's natural order.
package memory

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds both collections behind one lock.
type Store struct {
	mu        sync.RWMutex
	users     []domain.User
	exercises []domain.Exercise
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() repository.UserRepository {
	return userRepository{store: s}
}

// Exercises returns an ExerciseRepository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository {
	return exerciseRepository{store: s}
}

// ExerciseCount reports how many exercises are stored across all users.
func (s *Store) ExerciseCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exercises)
}

// Ping only fails once ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type userRepository struct {
	store *Store
}

func (r userRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user.ID = primitive.NewObjectID()
	r.store.users = append(r.store.users, *user)
	return user.ID, nil
}

func (r userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]domain.User, len(r.store.users))
	copy(users, r.store.users)
	return users, nil
}

type exerciseRepository struct {
	store *Store
}

func (r exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	r.store.exercises = append(r.store.exercises, *exercise)
	return exercise.ID, nil
}

func (r exerciseRepository) Find(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := []domain.Exercise{}
	for _, ex := range r.store.exercises {
		if filter.Limit > 0 && int64(len(matched)) >= filter.Limit {
			break
		}
		if ex.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && ex.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && ex.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, ex)
	}
	return matched, nil
}
