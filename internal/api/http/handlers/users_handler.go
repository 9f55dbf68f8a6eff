package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/events"
	"github.com/spec-kit/user-directory/internal/service"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UsersHandler exposes the directory CRUD endpoints.
type UsersHandler struct {
	service    *service.UserService
	dispatcher events.Dispatcher
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, dispatcher events.Dispatcher) *UsersHandler {
	return &UsersHandler{service: userService, dispatcher: dispatcher}
}

// publish emits a fire-and-forget controller event. The request context is
// not reused: handlers outlive the response.
func (h *UsersHandler) publish(eventType events.EventType, message string) {
	h.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// List handles GET /api/users with filtering, sorting and pagination.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	department := c.Query("department")
	status := c.Query("status")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	sortBy := c.Query("sortBy", "createdAt")
	sortOrder := c.Query("sortOrder", "desc")

	filter := domain.UserFilter{Department: department, Status: domain.UserStatus(status)}
	users, err := h.service.FindAll(c.Context(), filter)
	if err != nil {
		return err
	}

	sortUsers(users, sortBy, sortOrder == "asc")

	total := len(users)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	pageUsers := users[start:end]

	h.publish(events.EventAPIAccessed, fmt.Sprintf("Users list accessed - Page %d", page))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    pageUsers,
		"pagination": dto.Pagination{
			Current: page,
			Total:   total,
			Pages:   int(math.Ceil(float64(total) / float64(limit))),
			HasNext: page*limit < total,
			HasPrev: start > 0,
		},
		"total": total,
		"filters": dto.ListFilters{
			Department: orAll(department),
			Status:     orAll(status),
		},
	})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	user, err := h.service.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	h.publish(events.EventUserAccessed, fmt.Sprintf("User %d accessed", id))

	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", "Request body must be valid JSON")
	}

	if req.Name == "" || req.Email == "" || req.Age == 0 || req.Department == "" {
		return apperrors.NewValidationError("Missing required fields",
			"All fields are required: name, email, age, department")
	}
	if !emailPattern.MatchString(req.Email) {
		return apperrors.NewValidationError("Invalid email format", "Please provide a valid email address")
	}
	if req.Age < 18 || req.Age > 100 {
		return apperrors.NewValidationError("Invalid age", "Age must be between 18 and 100")
	}

	status := domain.UserStatus(req.Status)
	if status == "" {
		status = domain.UserStatusActive
	}
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return apperrors.NewValidationError("Invalid status", "Status must be one of: active, inactive")
	}

	user, err := h.service.Create(c.Context(), domain.User{
		Name:       req.Name,
		Email:      req.Email,
		Age:        req.Age,
		Department: req.Department,
		Status:     status,
	})
	if err != nil {
		return err
	}

	h.publish(events.EventUserCreated, fmt.Sprintf("New user created: %s (%s)", user.Name, user.Email))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", "Request body must be valid JSON")
	}
	if req.Age != nil && (*req.Age < 18 || *req.Age > 100) {
		return apperrors.NewValidationError("Invalid age", "Age must be between 18 and 100")
	}

	user, err := h.service.Update(c.Context(), id, req.Patch())
	if err != nil {
		return err
	}

	h.publish(events.EventUserUpdated, fmt.Sprintf("User %d updated", id))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	user, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}

	h.publish(events.EventUserDeleted, fmt.Sprintf("User %d (%s) deleted", id, user.Name))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
		"data":    user,
	})
}

// Stats handles GET /api/users/stats/count.
func (h *UsersHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	h.publish(events.EventStatsAccessed, "User statistics accessed")

	return c.JSON(fiber.Map{
		"success":     true,
		"data":        stats,
		"generatedAt": time.Now().UTC(),
	})
}

// Search handles GET /api/users/search/all.
func (h *UsersHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	field := c.Query("field", "all")

	if q == "" {
		return apperrors.NewValidationError("Search query required", "Please provide a search query (q parameter)")
	}
	switch field {
	case "all", "name", "email", "department":
	default:
		return apperrors.NewValidationError("Invalid search field",
			"Field must be one of: all, name, email, department")
	}

	users, err := h.service.FindAll(c.Context(), domain.UserFilter{})
	if err != nil {
		return err
	}

	query := strings.ToLower(q)
	seen := make(map[int]bool)
	results := make([]domain.User, 0)
	for _, user := range users {
		if seen[user.ID] {
			continue
		}
		match := false
		if field == "all" || field == "name" {
			match = match || strings.Contains(strings.ToLower(user.Name), query)
		}
		if field == "all" || field == "email" {
			match = match || strings.Contains(strings.ToLower(user.Email), query)
		}
		if field == "all" || field == "department" {
			match = match || strings.Contains(strings.ToLower(user.Department), query)
		}
		if match {
			seen[user.ID] = true
			results = append(results, user)
		}
	}

	h.publish(events.EventUserSearch, fmt.Sprintf("Search performed for: %s in field: %s", q, field))

	return c.JSON(fiber.Map{
		"success":           true,
		"data":              results,
		"total":             len(results),
		"query":             q,
		"field":             field,
		"searchPerformedAt": time.Now().UTC(),
	})
}

// ByDepartment handles GET /api/users/department/:dept.
func (h *UsersHandler) ByDepartment(c *fiber.Ctx) error {
	dept := c.Params("dept")
	users, err := h.service.FindAll(c.Context(), domain.UserFilter{Department: dept})
	if err != nil {
		return err
	}

	h.publish(events.EventDepartmentAccessed, fmt.Sprintf("Department %s users accessed", dept))

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       users,
		"department": dept,
		"total":      len(users),
	})
}

// Active handles GET /api/users/status/active.
func (h *UsersHandler) Active(c *fiber.Ctx) error {
	users, err := h.service.FindAll(c.Context(), domain.UserFilter{Status: domain.UserStatusActive})
	if err != nil {
		return err
	}

	h.publish(events.EventActiveUsersAccessed, "Active users list accessed")

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"total":   len(users),
		"status":  "active",
	})
}

// parseUserID reads the :id route param. Non-numeric ids never match a
// record, so they surface as not found rather than bad request.
func parseUserID(c *fiber.Ctx) (int, error) {
	raw := c.Params("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewNotFound("User", fmt.Sprintf("User with ID %s does not exist", raw))
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	val, err := strconv.Atoi(c.Query(key))
	if err != nil || val < 1 {
		return fallback
	}
	return val
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// sortUsers orders the listing deterministically: numeric for id/age, time
// for createdAt, lexicographic for the string fields. Unknown sort fields
// fall back to createdAt. Ties keep insertion order.
func sortUsers(users []domain.User, sortBy string, ascending bool) {
	less := func(a, b domain.User) bool {
		switch sortBy {
		case "id":
			return a.ID < b.ID
		case "age":
			return a.Age < b.Age
		case "name":
			return a.Name < b.Name
		case "email":
			return a.Email < b.Email
		case "department":
			return a.Department < b.Department
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		if ascending {
			return less(users[i], users[j])
		}
		return less(users[j], users[i])
	})
}
