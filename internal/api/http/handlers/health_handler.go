package handlers

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves the health probe and the root service description.
type HealthHandler struct {
	serviceName string
	version     string
	environment string
	startedAt   time.Time
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, environment string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		environment: environment,
		startedAt:   time.Now(),
	}
}

// Health reports service liveness with uptime and memory usage.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Seconds(),
		"memory": fiber.Map{
			"alloc":      mem.Alloc,
			"totalAlloc": mem.TotalAlloc,
			"sys":        mem.Sys,
			"numGC":      mem.NumGC,
		},
		"environment": h.environment,
		"version":     h.version,
	})
}

// Root describes the service and its endpoint map.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to " + h.serviceName,
		"version": h.version,
		"endpoints": fiber.Map{
			"health":        "/health",
			"users":         "/api/users",
			"users-stats":   "/api/users/stats/count",
			"contact":       "/api/contact",
			"contact-stats": "/api/contact/stats",
		},
		"environment": h.environment,
	})
}
