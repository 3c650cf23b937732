package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService registers and lists users.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, username string) (*domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ListUsers returns all users; an empty store yields an empty slice.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// CreateUser stores a user under any username, empty included.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{Username: username}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, storageError("create user", err)
	}
	user.ID = userID
	return user, nil
}

// resolveUser loads the user behind a hex id. Malformed ids cannot name a
// stored user, so they resolve to ErrUserNotFound as well.
func resolveUser(ctx context.Context, repo repository.UserRepository, rawID string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("find user", err)
	}
	return user, nil
}
