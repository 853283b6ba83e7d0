package settings

import (
	"database/sql"
	"strconv"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/gofiber/fiber/v2"
)

// GetAcademicYearsAPI lists all academic years.
func GetAcademicYearsAPI(c *fiber.Ctx, db *sql.DB) error {
	years, err := database.ListAcademicYears(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch academic years")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    years,
	})
}

// CreateAcademicYearAPI adds an academic year. The start month controls the
// school-year month buckets the payment allocator uses.
func CreateAcademicYearAPI(c *fiber.Ctx, db *sql.DB) error {
	type Request struct {
		AcademicYear string `json:"academic_year"`
		StartMonth   string `json:"start_month"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.AcademicYear == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Academic year name is required")
	}
	if req.StartMonth == "" {
		req.StartMonth = models.DefaultStartMonth
	}

	id, err := database.CreateAcademicYear(db, req.AcademicYear, req.StartMonth)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create academic year")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      id,
		"message": "Academic year created successfully",
	})
}

// ActivateAcademicYearAPI makes one academic year the active period.
func ActivateAcademicYearAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid academic year id")
	}

	if err := database.ActivateAcademicYear(db, id); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to activate academic year")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Academic year activated",
	})
}

// GetSemestersAPI lists all semesters.
func GetSemestersAPI(c *fiber.Ctx, db *sql.DB) error {
	semesters, err := database.ListSemesters(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch semesters")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    semesters,
	})
}

// CreateSemesterAPI adds a semester.
func CreateSemesterAPI(c *fiber.Ctx, db *sql.DB) error {
	type Request struct {
		SemesterName string `json:"semester_name"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SemesterName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Semester name is required")
	}

	id, err := database.CreateSemester(db, req.SemesterName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create semester")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      id,
		"message": "Semester created successfully",
	})
}

// ActivateSemesterAPI makes one semester the active period.
func ActivateSemesterAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid semester id")
	}

	if err := database.ActivateSemester(db, id); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Semester not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to activate semester")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Semester activated",
	})
}
