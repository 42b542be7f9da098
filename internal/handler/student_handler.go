package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/comprende-ia/comprende-api/internal/service"
	"github.com/comprende-ia/comprende-api/internal/utils"
)

// StudentHandler serves the student-facing progress and recommendation views.
type StudentHandler struct {
	progress        *service.ProgressService
	recommendations *service.RecommendationService
	logger          zerolog.Logger
}

// NewStudentHandler builds a StudentHandler.
func NewStudentHandler(progress *service.ProgressService, recommendations *service.RecommendationService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		progress:        progress,
		recommendations: recommendations,
		logger:          logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register mounts the student routes.
func (h *StudentHandler) Register(router fiber.Router) {
	group := router.Group("/student")
	group.Get("/progress", h.getProgress)
	group.Get("/recommendations", h.listRecommendations)
	group.Get("/recommendations/:textId", h.latestRecommendationForText)
}

func (h *StudentHandler) getProgress(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	report, err := h.progress.GetOwn(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", report)
}

func (h *StudentHandler) listRecommendations(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	recommendations, err := h.recommendations.ListPendingForStudent(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", recommendations)
}

// latestRecommendationForText answers with null data when no pending
// recommendation exists for the text.
func (h *StudentHandler) latestRecommendationForText(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	textID, err := parseIDParam(c, "textId")
	if err != nil {
		return handleError(c, err)
	}

	recommendation, err := h.recommendations.LatestPendingForText(c.UserContext(), userID, textID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", recommendation)
}
