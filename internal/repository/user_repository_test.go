package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-directory/internal/domain"
)

func newTestUser(name, email, dept string, age int, status domain.UserStatus) domain.User {
	return domain.User{Name: name, Email: email, Age: age, Department: dept, Status: status}
}

func TestMemoryUserRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(WithSeedUsers())

	t.Run("no filters returns full set in insertion order", func(t *testing.T) {
		users, err := repo.Find(ctx, domain.UserFilter{})
		require.NoError(t, err)
		require.Len(t, users, 5)
		assert.Equal(t, 1, users[0].ID)
		assert.Equal(t, 5, users[4].ID)
	})

	t.Run("department matches case-insensitive substring", func(t *testing.T) {
		users, err := repo.Find(ctx, domain.UserFilter{Department: "eng"})
		require.NoError(t, err)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Equal(t, "Engineering", u.Department)
		}
	})

	t.Run("status matches exactly", func(t *testing.T) {
		users, err := repo.Find(ctx, domain.UserFilter{Status: domain.UserStatusInactive})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Mike Johnson", users[0].Name)
	})

	t.Run("email matches case-insensitive substring", func(t *testing.T) {
		users, err := repo.Find(ctx, domain.UserFilter{Email: "JANE.SMITH"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Jane Smith", users[0].Name)
	})

	t.Run("filters combine", func(t *testing.T) {
		users, err := repo.Find(ctx, domain.UserFilter{Department: "engineering", Status: domain.UserStatusActive})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestMemoryUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	first, err := repo.Create(ctx, newTestUser("A", "a@example.com", "Eng", 30, domain.UserStatusActive))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newTestUser("B", "b@example.com", "Eng", 31, domain.UserStatusActive))
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	// the store performs no uniqueness check; that is the service's job
	dup, err := repo.Create(ctx, newTestUser("C", "a@example.com", "Eng", 32, domain.UserStatusActive))
	require.NoError(t, err)
	assert.Equal(t, 3, dup.ID)
}

func TestMemoryUserRepository_SeededNextID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(WithSeedUsers())

	created, err := repo.Create(ctx, newTestUser("New", "new@example.com", "Eng", 40, domain.UserStatusActive))
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
}

func TestMemoryUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	created, err := repo.Create(ctx, newTestUser("A", "a@example.com", "Eng", 30, domain.UserStatusActive))
	require.NoError(t, err)

	t.Run("merges patch and preserves id and createdAt", func(t *testing.T) {
		name := "Renamed"
		age := 45
		updated, err := repo.Update(ctx, created.ID, domain.UserPatch{Name: &name, Age: &age})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, 45, updated.Age)
		assert.Equal(t, "a@example.com", updated.Email)
	})

	t.Run("absent id returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Update(ctx, 999, domain.UserPatch{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	created, err := repo.Create(ctx, newTestUser("A", "a@example.com", "Eng", 30, domain.UserStatusActive))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// deletion is terminal
	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields zero-valued stats", func(t *testing.T) {
		repo := NewMemoryUserRepository()
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, 0, stats.Age.Average)
	})

	t.Run("aggregates counts and ages", func(t *testing.T) {
		repo := NewMemoryUserRepository()
		_, err := repo.Create(ctx, newTestUser("A", "a@example.com", "Eng", 20, domain.UserStatusActive))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newTestUser("B", "b@example.com", "Eng", 30, domain.UserStatusActive))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newTestUser("C", "c@example.com", "HR", 41, domain.UserStatusInactive))
		require.NoError(t, err)

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Active)
		assert.Equal(t, 1, stats.Inactive)
		assert.Equal(t, 3, stats.Recent)
		assert.Equal(t, map[string]int{"Eng": 2, "HR": 1}, stats.Departments)
		assert.Equal(t, 20, stats.Age.Min)
		assert.Equal(t, 41, stats.Age.Max)
		assert.Equal(t, 30, stats.Age.Average)
		assert.False(t, stats.GeneratedAt.IsZero())
	})

	t.Run("recent counts only the trailing 30 days", func(t *testing.T) {
		repo := NewMemoryUserRepository(WithSeedUsers())
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, stats.Total)
		assert.Equal(t, 0, stats.Recent)
	})
}

func TestMemoryUserRepository_LatencySimulation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(WithLatency(5*time.Millisecond, 10*time.Millisecond))

	start := time.Now()
	_, err := repo.Find(ctx, domain.UserFilter{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}
