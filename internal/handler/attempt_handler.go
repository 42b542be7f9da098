package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/service"
	"github.com/comprende-ia/comprende-api/internal/utils"
)

// AttemptHandler serves attempt submission and retrieval for students.
type AttemptHandler struct {
	attempts *service.AttemptService
	logger   zerolog.Logger
}

// NewAttemptHandler builds an AttemptHandler.
func NewAttemptHandler(attempts *service.AttemptService, logger zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		attempts: attempts,
		logger:   logger.With().Str("component", "attempt_handler").Logger(),
	}
}

// Register mounts the attempt routes.
func (h *AttemptHandler) Register(router fiber.Router) {
	group := router.Group("/attempts")
	group.Post("/", h.create)
	group.Get("/:textId/my-attempt", h.latestForText)
}

func (h *AttemptHandler) create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req dto.AttemptCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.attempts.Create(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attempt evaluated", attempt)
}

func (h *AttemptHandler) latestForText(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	textID, err := parseIDParam(c, "textId")
	if err != nil {
		return handleError(c, err)
	}

	attempt, err := h.attempts.GetLatestForText(c.UserContext(), userID, textID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", attempt)
}
