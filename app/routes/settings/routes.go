package settings

import (
	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes sets up the settings routes
func SetupSettingsRoutes(app *fiber.App) {
	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware("admin", "registrar"))

	api.Get("/academic-years", func(c *fiber.Ctx) error {
		return GetAcademicYearsAPI(c, config.GetDB())
	})

	api.Post("/academic-years", func(c *fiber.Ctx) error {
		return CreateAcademicYearAPI(c, config.GetDB())
	})

	api.Post("/academic-years/:id/activate", func(c *fiber.Ctx) error {
		return ActivateAcademicYearAPI(c, config.GetDB())
	})

	api.Get("/semesters", func(c *fiber.Ctx) error {
		return GetSemestersAPI(c, config.GetDB())
	})

	api.Post("/semesters", func(c *fiber.Ctx) error {
		return CreateSemesterAPI(c, config.GetDB())
	})

	api.Post("/semesters/:id/activate", func(c *fiber.Ctx) error {
		return ActivateSemesterAPI(c, config.GetDB())
	})
}
