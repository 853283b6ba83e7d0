package assessments

import (
	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupAssessmentRoutes sets up the assessment routes
func SetupAssessmentRoutes(app *fiber.App) {
	api := app.Group("/api/assessments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetAssessmentsAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateAssessmentAPI(c, config.GetDB())
	})
}
