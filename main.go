package main

import (
	"log"
	"time"

	"github.com/dhiee1598/vdps-sfrms/app/config"
	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/routes/assessments"
	"github.com/dhiee1598/vdps-sfrms/app/routes/auth"
	"github.com/dhiee1598/vdps-sfrms/app/routes/dashboard"
	"github.com/dhiee1598/vdps-sfrms/app/routes/enrollment"
	"github.com/dhiee1598/vdps-sfrms/app/routes/fees"
	"github.com/dhiee1598/vdps-sfrms/app/routes/settings"
	"github.com/dhiee1598/vdps-sfrms/app/routes/students"
	"github.com/dhiee1598/vdps-sfrms/app/routes/transactions"
	"github.com/dhiee1598/vdps-sfrms/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler renders every error as the standard JSON envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Set global time zone to Philippine Standard Time
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Manila location, falling back to UTC+8: %v", err)
		time.Local = time.FixedZone("PST", 8*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Setup students routes
	students.SetupStudentRoutes(app)

	// Setup enrollment routes
	enrollment.SetupEnrollmentRoutes(app)

	// Setup fees routes
	fees.SetupFeesRoutes(app)

	// Setup assessments routes
	assessments.SetupAssessmentRoutes(app)

	// Setup transactions routes
	transactions.SetupTransactionRoutes(app)

	// Setup settings routes
	settings.SetupSettingsRoutes(app)

	// Start server
	log.Printf("Server starting on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
