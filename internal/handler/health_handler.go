package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comprende-ia/comprende-api/internal/utils"
)

// HealthHandler serves liveness probes.
type HealthHandler struct {
	appName string
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

// Register mounts the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.check)
}

func (h *HealthHandler) check(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "", fiber.Map{
		"service": h.appName,
		"status":  "ok",
	})
}
