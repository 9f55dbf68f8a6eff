package repository

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/user-directory/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines storage access for directory users.
type UserRepository interface {
	Find(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, data domain.User) (*domain.User, error)
	Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int) (*domain.User, error)
	Stats(ctx context.Context) (*domain.UserStats, error)
}

// LatencyRange bounds the simulated per-call storage delay. A zero Max
// disables the simulation.
type LatencyRange struct {
	Min time.Duration
	Max time.Duration
}

type memoryUserRepository struct {
	mu      sync.Mutex
	users   []domain.User
	nextID  int
	latency LatencyRange
}

// UserRepositoryOption customizes the memory repository.
type UserRepositoryOption func(*memoryUserRepository)

// WithLatency sets the simulated storage delay range.
func WithLatency(min, max time.Duration) UserRepositoryOption {
	return func(r *memoryUserRepository) {
		r.latency = LatencyRange{Min: min, Max: max}
	}
}

// WithSeedUsers preloads the sample data set.
func WithSeedUsers() UserRepositoryOption {
	return func(r *memoryUserRepository) {
		r.users = seedUsers()
		r.nextID = len(r.users) + 1
	}
}

// NewMemoryUserRepository returns a process-lifetime in-memory implementation.
func NewMemoryUserRepository(opts ...UserRepositoryOption) UserRepository {
	r := &memoryUserRepository{nextID: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "John Doe", Email: "john.doe@example.com", Age: 28, Department: "Engineering", Status: domain.UserStatusActive, CreatedAt: time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Jane Smith", Email: "jane.smith@example.com", Age: 32, Department: "Marketing", Status: domain.UserStatusActive, CreatedAt: time.Date(2023, 2, 20, 14, 30, 0, 0, time.UTC)},
		{ID: 3, Name: "Mike Johnson", Email: "mike.johnson@example.com", Age: 25, Department: "Sales", Status: domain.UserStatusInactive, CreatedAt: time.Date(2023, 3, 10, 9, 15, 0, 0, time.UTC)},
		{ID: 4, Name: "Sarah Wilson", Email: "sarah.wilson@example.com", Age: 29, Department: "Engineering", Status: domain.UserStatusActive, CreatedAt: time.Date(2023, 4, 5, 16, 45, 0, 0, time.UTC)},
		{ID: 5, Name: "David Brown", Email: "david.brown@example.com", Age: 35, Department: "HR", Status: domain.UserStatusActive, CreatedAt: time.Date(2023, 5, 12, 11, 20, 0, 0, time.UTC)},
	}
}

// simulateDelay emulates storage I/O. The sleep is deliberately not
// cancellable; callers get no timeout semantics from this layer.
func (r *memoryUserRepository) simulateDelay() {
	if r.latency.Max <= 0 {
		return
	}
	span := r.latency.Max - r.latency.Min
	if span < 0 {
		span = 0
	}
	delay := r.latency.Min
	if span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	time.Sleep(delay)
}

func (r *memoryUserRepository) Find(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	r.simulateDelay()

	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		if filter.Department != "" && !strings.Contains(strings.ToLower(user.Department), strings.ToLower(filter.Department)) {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if filter.Email != "" && !strings.Contains(strings.ToLower(user.Email), strings.ToLower(filter.Email)) {
			continue
		}
		results = append(results, user)
	}
	return results, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	r.simulateDelay()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) Create(ctx context.Context, data domain.User) (*domain.User, error) {
	r.simulateDelay()

	r.mu.Lock()
	defer r.mu.Unlock()

	data.ID = r.nextID
	r.nextID++
	data.CreatedAt = time.Now()
	r.users = append(r.users, data)

	created := data
	return &created, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error) {
	r.simulateDelay()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		user := &r.users[i]
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Age != nil {
			user.Age = *patch.Age
		}
		if patch.Department != nil {
			user.Department = *patch.Department
		}
		if patch.Status != nil {
			user.Status = *patch.Status
		}
		updated := *user
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) Delete(ctx context.Context, id int) (*domain.User, error) {
	r.simulateDelay()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			deleted := r.users[i]
			r.users = append(r.users[:i], r.users[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) Stats(ctx context.Context) (*domain.UserStats, error) {
	r.simulateDelay()

	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.UserStats{
		Total:       len(r.users),
		Departments: make(map[string]int),
		GeneratedAt: time.Now(),
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	ageSum := 0
	for i, user := range r.users {
		if user.Status == domain.UserStatusActive {
			stats.Active++
		}
		if user.Status == domain.UserStatusInactive {
			stats.Inactive++
		}
		if user.CreatedAt.After(thirtyDaysAgo) {
			stats.Recent++
		}
		stats.Departments[user.Department]++

		ageSum += user.Age
		if i == 0 || user.Age < stats.Age.Min {
			stats.Age.Min = user.Age
		}
		if user.Age > stats.Age.Max {
			stats.Age.Max = user.Age
		}
	}
	if stats.Total > 0 {
		stats.Age.Average = int(math.Round(float64(ageSum) / float64(stats.Total)))
	}

	return stats, nil
}
