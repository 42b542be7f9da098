package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/utils"
)

// UserDirectory resolves an authenticated subject to its current record.
// The role stored there is authoritative; the role claim inside the token is
// only a hint and is never trusted for authorization decisions.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
}

// RequireRole ensures the authenticated user currently holds one of the
// allowed roles. Must run after JWTProtected.
func RequireRole(users UserDirectory, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(LocalUserID).(uint)
		if !ok || userID == 0 {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "user not found")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}

		if _, ok := allowed[strings.ToLower(user.Role)]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		c.Locals(LocalUserRole, user.Role)

		return c.Next()
	}
}
