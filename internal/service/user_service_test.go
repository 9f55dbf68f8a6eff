package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/repository"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

func newUserService() *UserService {
	return NewUserService(repository.NewMemoryUserRepository())
}

func domainError(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and creation time", func(t *testing.T) {
		svc := newUserService()
		user, err := svc.Create(ctx, domain.User{Name: "X", Email: "x@y.com", Age: 30, Department: "Eng", Status: domain.UserStatusActive})
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("rejects duplicate email case-insensitively", func(t *testing.T) {
		svc := newUserService()
		_, err := svc.Create(ctx, domain.User{Name: "X", Email: "x@y.com", Age: 30, Department: "Eng", Status: domain.UserStatusActive})
		require.NoError(t, err)

		_, err = svc.Create(ctx, domain.User{Name: "Y", Email: "X@Y.COM", Age: 31, Department: "Eng", Status: domain.UserStatusActive})
		require.Error(t, err)
		domainErr := domainError(t, err)
		assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
		assert.Contains(t, domainErr.Message, "already exists")
	})
}

func TestUserService_FindByID(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.FindByID(ctx, 42)
	require.Error(t, err)
	domainErr := domainError(t, err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "42")
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	created, err := svc.Create(ctx, domain.User{Name: "X", Email: "x@y.com", Age: 30, Department: "Eng", Status: domain.UserStatusActive})
	require.NoError(t, err)

	t.Run("id and createdAt survive any patch", func(t *testing.T) {
		email := "changed@y.com"
		status := domain.UserStatusInactive
		updated, err := svc.Update(ctx, created.ID, domain.UserPatch{Email: &email, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.Equal(t, "changed@y.com", updated.Email)
	})

	t.Run("email uniqueness is not enforced on update", func(t *testing.T) {
		other, err := svc.Create(ctx, domain.User{Name: "Z", Email: "z@y.com", Age: 30, Department: "Eng", Status: domain.UserStatusActive})
		require.NoError(t, err)

		email := "changed@y.com"
		_, err = svc.Update(ctx, other.ID, domain.UserPatch{Email: &email})
		assert.NoError(t, err)
	})

	t.Run("absent id maps to 404", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, domain.UserPatch{})
		assert.Equal(t, http.StatusNotFound, domainError(t, err).HTTPStatus)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	created, err := svc.Create(ctx, domain.User{Name: "X", Email: "x@y.com", Age: 30, Department: "Eng", Status: domain.UserStatusActive})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Delete(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, domainError(t, err).HTTPStatus)
}
