package dashboard

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// GetDashboardStatsAPI returns the registrar's overview for the active
// academic year.
func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	period, err := database.GetCurrentPeriod(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve current period")
	}
	if period.AcademicYear == nil {
		return fiber.NewError(fiber.StatusBadRequest, "No active academic year")
	}

	stats, err := database.GetDashboardStats(db, period.AcademicYear.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// StreamEventsAPI streams data-change notifications as server-sent events.
// The front end listens here instead of polling the projection endpoints.
func StreamEventsAPI(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	events, cancel := services.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Client went away.
				return
			}
		}
	}))

	return nil
}
