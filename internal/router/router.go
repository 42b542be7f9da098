package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comprende-ia/comprende-api/internal/config"
	"github.com/comprende-ia/comprende-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	HealthHandler  *handler.HealthHandler
	AuthHandler    *handler.AuthHandler
	TextHandler    *handler.TextHandler
	AttemptHandler *handler.AttemptHandler
	StudentHandler *handler.StudentHandler
	TeacherHandler *handler.TeacherHandler
	JWTMiddleware  fiber.Handler
	RequireStudent fiber.Handler
	RequireTeacher fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(api)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	requireStudent := deps.RequireStudent
	if requireStudent == nil {
		requireStudent = passthrough
	}
	requireTeacher := deps.RequireTeacher
	if requireTeacher == nil {
		requireTeacher = passthrough
	}

	// Texts and attempts belong to the authenticated student.
	if deps.TextHandler != nil {
		deps.TextHandler.Register(api.Group("", jwtMiddleware, requireStudent))
	}
	if deps.AttemptHandler != nil {
		deps.AttemptHandler.Register(api.Group("", jwtMiddleware, requireStudent))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("", jwtMiddleware, requireStudent))
	}
	if deps.TeacherHandler != nil {
		deps.TeacherHandler.Register(api.Group("", jwtMiddleware, requireTeacher))
	}
}
