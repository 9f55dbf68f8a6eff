package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-directory/internal/domain"
)

func insertContact(t *testing.T, repo ContactRepository, name string) *domain.Contact {
	t.Helper()
	contact, err := repo.Insert(context.Background(), domain.Contact{
		Name:    name,
		Email:   name + "@example.com",
		Subject: "General Inquiry",
		Message: "hello",
	})
	require.NoError(t, err)
	return contact
}

func TestMemoryContactRepository_Insert(t *testing.T) {
	repo := NewMemoryContactRepository()

	first := insertContact(t, repo, "a")
	second := insertContact(t, repo, "b")

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, domain.ContactStatusPending, first.Status)
	assert.False(t, first.SubmittedAt.IsZero())
	assert.Nil(t, first.UpdatedAt)
}

func TestMemoryContactRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryContactRepository()
	insertContact(t, repo, "a")
	resolved := insertContact(t, repo, "b")
	_, err := repo.UpdateStatus(ctx, resolved.ID, domain.ContactStatusResolved)
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		contacts, err := repo.Find(ctx, "")
		require.NoError(t, err)
		assert.Len(t, contacts, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		contacts, err := repo.Find(ctx, domain.ContactStatusResolved)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, resolved.ID, contacts[0].ID)
	})
}

func TestMemoryContactRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryContactRepository()
	contact := insertContact(t, repo, "a")

	updated, err := repo.UpdateStatus(ctx, contact.ID, domain.ContactStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusInProgress, updated.Status)
	require.NotNil(t, updated.UpdatedAt)

	_, err = repo.UpdateStatus(ctx, 999, domain.ContactStatusClosed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryContactRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryContactRepository()
	contact := insertContact(t, repo, "a")

	require.NoError(t, repo.Delete(ctx, contact.ID))

	_, err := repo.FindByID(ctx, contact.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, contact.ID), ErrNotFound)
}

func TestMemoryContactRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryContactRepository()
	insertContact(t, repo, "a")
	b := insertContact(t, repo, "b")
	c := insertContact(t, repo, "c")
	_, err := repo.UpdateStatus(ctx, b.ID, domain.ContactStatusResolved)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, c.ID, domain.ContactStatusClosed)
	require.NoError(t, err)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.ContactStats{Total: 3, Pending: 1, Resolved: 1, Closed: 1}, stats)
}
