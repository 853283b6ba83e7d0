package transactions

import (
	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupTransactionRoutes sets up the transaction routes
func SetupTransactionRoutes(app *fiber.App) {
	api := app.Group("/api/transactions")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetTransactionsAPI(c, config.GetDB())
	})

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetTransactionStatsAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateTransactionAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateTransactionAPI(c, config.GetDB())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return CancelTransactionAPI(c, config.GetDB())
	})
}
