package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/comprende-ia/comprende-api/internal/middleware"
	"github.com/comprende-ia/comprende-api/internal/service"
	"github.com/comprende-ia/comprende-api/internal/utils"
)

var errInvalidID = errors.New("invalid id parameter")

// currentUserID reads the authenticated user id placed by the JWT middleware.
func currentUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok || id == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing authenticated user")
	}

	return id, nil
}

// parseIDParam parses a positive numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return uint(id), nil
}

// handleError maps service errors onto HTTP responses. Unknown errors become
// an opaque 500.
func handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return utils.SendError(c, fiber.StatusBadRequest, validationErrs.Error())
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return utils.SendError(c, fiberErr.Code, fiberErr.Message)
	}

	switch {
	case errors.Is(err, errInvalidID),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrUnsupportedFile),
		errors.Is(err, service.ErrDueDateRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotEnrolled):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTextNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrNoAttempts):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateText),
		errors.Is(err, service.ErrAlreadyEnrolled):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrQuestionsUnavailable):
		return utils.SendError(c, fiber.StatusBadGateway, err.Error())
	default:
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
