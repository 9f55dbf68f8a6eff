package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/repository"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// emailPattern accepts local@domain.tld with no whitespace, one "@" and at
// least one "." in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactSubmission is the validated input for a contact-form submission.
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService wraps the contact repository with form validation.
type ContactService struct {
	contacts repository.ContactRepository
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// Submit validates and stores a contact-form submission. Subject defaults to
// "General Inquiry" when absent; all fields are trimmed and the email
// lowercased before storage.
func (s *ContactService) Submit(ctx context.Context, input ContactSubmission) (*domain.Contact, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || message == "" {
		return nil, apperrors.NewValidationError("Validation Error", "Name, email, and message are required fields")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("Validation Error", "Invalid email format")
	}
	if subject == "" {
		subject = "General Inquiry"
	}

	contact, err := s.contacts.Insert(ctx, domain.Contact{
		Name:    name,
		Email:   strings.ToLower(email),
		Subject: subject,
		Message: message,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("Internal Server Error", fmt.Errorf("database error: %w", err))
	}
	return contact, nil
}

// List returns all submissions, optionally filtered by status.
func (s *ContactService) List(ctx context.Context, status domain.ContactStatus) ([]domain.Contact, error) {
	contacts, err := s.contacts.Find(ctx, status)
	if err != nil {
		return nil, apperrors.NewInternalError("Internal Server Error", fmt.Errorf("database error: %w", err))
	}
	return contacts, nil
}

// GetByID returns a submission or a not-found error.
func (s *ContactService) GetByID(ctx context.Context, id int) (*domain.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Contact", fmt.Sprintf("Contact with ID %d not found", id))
		}
		return nil, apperrors.NewInternalError("Internal Server Error", fmt.Errorf("database error: %w", err))
	}
	return contact, nil
}

// UpdateStatus transitions a submission to one of the enumerated statuses.
func (s *ContactService) UpdateStatus(ctx context.Context, id int, status domain.ContactStatus) (*domain.Contact, error) {
	if !domain.IsValidContactStatus(status) {
		values := make([]string, 0, len(domain.ValidContactStatuses))
		for _, v := range domain.ValidContactStatuses {
			values = append(values, string(v))
		}
		return nil, apperrors.NewValidationError("Validation Error",
			fmt.Sprintf("Status must be one of: %s", strings.Join(values, ", ")))
	}

	contact, err := s.contacts.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Contact", fmt.Sprintf("Contact with ID %d not found", id))
		}
		return nil, apperrors.NewInternalError("Internal Server Error", fmt.Errorf("database error: %w", err))
	}
	return contact, nil
}

// Delete removes a submission.
func (s *ContactService) Delete(ctx context.Context, id int) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Contact", fmt.Sprintf("Contact with ID %d not found", id))
		}
		return apperrors.NewInternalError("Internal Server Error", fmt.Errorf("database error: %w", err))
	}
	return nil
}

// Stats counts submissions per status.
func (s *ContactService) Stats(ctx context.Context) (*domain.ContactStats, error) {
	stats, err := s.contacts.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Internal Server Error", fmt.Errorf("database error: %w", err))
	}
	return stats, nil
}
