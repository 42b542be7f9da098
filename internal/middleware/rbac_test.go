package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

type stubDirectory struct {
	user models.User
	err  error
}

func (s *stubDirectory) GetByID(_ context.Context, _ uint) (models.User, error) {
	return s.user, s.err
}

func newRBACApp(directory UserDirectory, userID interface{}, roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		func(c *fiber.Ctx) error {
			if userID != nil {
				c.Locals(LocalUserID, userID)
			}
			return c.Next()
		},
		RequireRole(directory, roles...),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	directory := &stubDirectory{user: models.User{ID: 9, Role: models.RoleTeacher}}
	app := newRBACApp(directory, uint(9), models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	directory := &stubDirectory{user: models.User{ID: 9, Role: models.RoleStudent}}
	app := newRBACApp(directory, uint(9), models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleWithoutAuthentication(t *testing.T) {
	directory := &stubDirectory{user: models.User{ID: 9, Role: models.RoleTeacher}}
	app := newRBACApp(directory, nil, models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleDeletedUser(t *testing.T) {
	directory := &stubDirectory{err: gorm.ErrRecordNotFound}
	app := newRBACApp(directory, uint(9), models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
