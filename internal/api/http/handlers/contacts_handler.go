package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/service"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// ContactsHandler exposes the contact-form endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// Submit handles POST /api/contact, the only unauthenticated write path.
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation Error", "Request body must be valid JSON")
	}

	contact, err := h.service.Submit(c.Context(), service.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Thank you for contacting us! We will get back to you soon.",
		"data": fiber.Map{
			"id":          contact.ID,
			"submittedAt": contact.SubmittedAt,
		},
	})
}

// List handles GET /api/contact.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	status := domain.ContactStatus(c.Query("status"))
	contacts, err := h.service.List(c.Context(), status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(contacts),
		"data":    contacts,
	})
}

// Get handles GET /api/contact/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	id, err := parseContactID(c)
	if err != nil {
		return err
	}
	contact, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": contact})
}

// UpdateStatus handles PATCH /api/contact/:id/status.
func (h *ContactsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseContactID(c)
	if err != nil {
		return err
	}

	var req dto.ContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation Error", "Request body must be valid JSON")
	}

	contact, err := h.service.UpdateStatus(c.Context(), id, domain.ContactStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact status updated successfully",
		"data":    contact,
	})
}

// Delete handles DELETE /api/contact/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseContactID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact deleted successfully",
	})
}

// Stats handles GET /api/contact/stats.
func (h *ContactsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func parseContactID(c *fiber.Ctx) (int, error) {
	raw := c.Params("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewNotFound("Contact", fmt.Sprintf("Contact with ID %s not found", raw))
	}
	return id, nil
}
