package dashboard

import (
	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, config.GetDB())
	})

	api.Get("/events", StreamEventsAPI)
}
