package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/user-directory/internal/domain"
)

// ContactRepository defines storage access for contact submissions.
type ContactRepository interface {
	Insert(ctx context.Context, data domain.Contact) (*domain.Contact, error)
	Find(ctx context.Context, status domain.ContactStatus) ([]domain.Contact, error)
	FindByID(ctx context.Context, id int) (*domain.Contact, error)
	UpdateStatus(ctx context.Context, id int, status domain.ContactStatus) (*domain.Contact, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (*domain.ContactStats, error)
}

type memoryContactRepository struct {
	mu       sync.Mutex
	contacts []domain.Contact
	nextID   int
}

// NewMemoryContactRepository returns a process-lifetime in-memory implementation.
func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{nextID: 1}
}

func (r *memoryContactRepository) Insert(ctx context.Context, data domain.Contact) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data.ID = r.nextID
	r.nextID++
	data.SubmittedAt = time.Now()
	data.Status = domain.ContactStatusPending
	r.contacts = append(r.contacts, data)

	created := data
	return &created, nil
}

func (r *memoryContactRepository) Find(ctx context.Context, status domain.ContactStatus) ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]domain.Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		if status != "" && contact.Status != status {
			continue
		}
		results = append(results, contact)
	}
	return results, nil
}

func (r *memoryContactRepository) FindByID(ctx context.Context, id int) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.contacts {
		if r.contacts[i].ID == id {
			contact := r.contacts[i]
			return &contact, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryContactRepository) UpdateStatus(ctx context.Context, id int, status domain.ContactStatus) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.contacts {
		if r.contacts[i].ID != id {
			continue
		}
		now := time.Now()
		r.contacts[i].Status = status
		r.contacts[i].UpdatedAt = &now
		updated := r.contacts[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *memoryContactRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryContactRepository) Stats(ctx context.Context) (*domain.ContactStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.ContactStats{Total: len(r.contacts)}
	for _, contact := range r.contacts {
		switch contact.Status {
		case domain.ContactStatusPending:
			stats.Pending++
		case domain.ContactStatusInProgress:
			stats.InProgress++
		case domain.ContactStatusResolved:
			stats.Resolved++
		case domain.ContactStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}
