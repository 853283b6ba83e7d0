package fees

import (
	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupFeesRoutes sets up the fees routes
func SetupFeesRoutes(app *fiber.App) {
	feesAPI := app.Group("/api/fees")
	feesAPI.Use(auth.AuthMiddleware)

	feesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, config.GetDB())
	})

	feesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateFeeAPI(c, config.GetDB())
	})

	feesAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateFeeAPI(c, config.GetDB())
	})

	gradeLevelFeesAPI := app.Group("/api/grade-level-fees")
	gradeLevelFeesAPI.Use(auth.AuthMiddleware)

	gradeLevelFeesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetGradeLevelFeesAPI(c, config.GetDB())
	})

	gradeLevelFeesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateGradeLevelFeeAPI(c, config.GetDB())
	})

	gradeLevelFeesAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateGradeLevelFeeAPI(c, config.GetDB())
	})

	lookupAPI := app.Group("/api")
	lookupAPI.Use(auth.AuthMiddleware)

	lookupAPI.Get("/grade-levels", func(c *fiber.Ctx) error {
		return GetGradeLevelsAPI(c, config.GetDB())
	})

	lookupAPI.Get("/strands", func(c *fiber.Ctx) error {
		return GetStrandsAPI(c, config.GetDB())
	})
}
