package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/service"
	"github.com/comprende-ia/comprende-api/internal/utils"
)

// TextHandler serves text storage, upload and question generation.
type TextHandler struct {
	texts     *service.TextService
	questions *service.QuestionService
	logger    zerolog.Logger
}

// NewTextHandler builds a TextHandler.
func NewTextHandler(texts *service.TextService, questions *service.QuestionService, logger zerolog.Logger) *TextHandler {
	return &TextHandler{
		texts:     texts,
		questions: questions,
		logger:    logger.With().Str("component", "text_handler").Logger(),
	}
}

// Register mounts the text routes.
func (h *TextHandler) Register(router fiber.Router) {
	group := router.Group("/textos")
	group.Post("/", h.create)
	group.Post("/upload", h.upload)
	group.Get("/", h.list)
	group.Get("/:id", h.get)
	group.Post("/:id/questions", h.getQuestions)
}

func (h *TextHandler) create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req dto.TextCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	text, err := h.texts.Create(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "text stored", text)
}

func (h *TextHandler) upload(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "missing file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file could not be read")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file could not be read")
	}

	text, err := h.texts.CreateFromUpload(c.UserContext(), userID, fileHeader.Filename, data)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "text stored", text)
}

func (h *TextHandler) list(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	texts, err := h.texts.ListForOwner(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", texts)
}

func (h *TextHandler) get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	textID, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	text, err := h.texts.GetForOwner(c.UserContext(), textID, userID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", text)
}

func (h *TextHandler) getQuestions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	textID, err := parseIDParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	questions, err := h.questions.GetOrGenerate(c.UserContext(), textID, userID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", questions)
}
