package enrollment

import (
	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up the enrollment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/enrollments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetEnrollmentsAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateEnrollmentAPI(c, config.GetDB())
	})
}
