package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/repository"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// UserService wraps the user repository with validation and error translation.
// It is the only layer mapping storage failures onto the API error taxonomy.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// FindAll lists users matching the filter.
func (s *UserService) FindAll(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	users, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, s.wrapStoreError(err)
	}
	return users, nil
}

// FindByID returns a single user or a not-found error.
func (s *UserService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User", fmt.Sprintf("User with ID %d does not exist", id))
		}
		return nil, s.wrapStoreError(err)
	}
	return user, nil
}

// Create adds a user after rejecting duplicate emails. The uniqueness check
// is case-insensitive and runs only here; the repository stays check-free.
func (s *UserService) Create(ctx context.Context, data domain.User) (*domain.User, error) {
	existing, err := s.users.Find(ctx, domain.UserFilter{})
	if err != nil {
		return nil, s.wrapStoreError(err)
	}
	for _, user := range existing {
		if strings.EqualFold(user.Email, data.Email) {
			return nil, apperrors.NewValidationError("Duplicate email", "User with this email already exists")
		}
	}

	created, err := s.users.Create(ctx, data)
	if err != nil {
		return nil, s.wrapStoreError(err)
	}
	return created, nil
}

// Update merges the patch onto an existing user.
func (s *UserService) Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error) {
	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User", fmt.Sprintf("User with ID %d does not exist", id))
		}
		return nil, s.wrapStoreError(err)
	}
	return updated, nil
}

// Delete removes a user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id int) (*domain.User, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User", fmt.Sprintf("User with ID %d does not exist", id))
		}
		return nil, s.wrapStoreError(err)
	}
	return deleted, nil
}

// Stats returns directory-wide aggregates.
func (s *UserService) Stats(ctx context.Context) (*domain.UserStats, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, s.wrapStoreError(err)
	}
	return stats, nil
}

func (s *UserService) wrapStoreError(err error) error {
	return apperrors.NewInternalError("Database error", fmt.Errorf("database error: %w", err))
}
