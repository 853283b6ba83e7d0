package enrollment

import (
	"database/sql"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/dhiee1598/vdps-sfrms/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

var validate = validator.New()

// CreateEnrollmentRequest registers a student into the active academic year.
type CreateEnrollmentRequest struct {
	StudentID    string `json:"student_id" validate:"required"`
	GradeLevelID int    `json:"grade_level_id" validate:"required,gt=0"`
	StrandID     *int   `json:"strand_id"`
	SectionID    *int   `json:"section_id"`
}

// CreateEnrollmentAPI enrolls a student for the active academic year. A
// student can hold only one enrollment per academic year.
func CreateEnrollmentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid data provided: "+err.Error())
	}

	if _, err := database.GetStudentByID(db, req.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	period, err := database.GetCurrentPeriod(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve current period")
	}
	if period.AcademicYear == nil {
		return fiber.NewError(fiber.StatusBadRequest, "No active academic year")
	}

	exists, err := database.EnrollmentExists(db, req.StudentID, period.AcademicYear.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if exists {
		return fiber.NewError(fiber.StatusConflict, "Student is already enrolled for this academic year")
	}

	e := &models.Enrollment{
		StudentID:      req.StudentID,
		GradeLevelID:   req.GradeLevelID,
		StrandID:       req.StrandID,
		SectionID:      req.SectionID,
		AcademicYearID: period.AcademicYear.ID,
		Status:         "enrolled",
	}
	if period.Semester != nil {
		e.SemesterID = &period.Semester.ID
	}

	if err := database.CreateEnrollment(db, e); err != nil {
		// The schema also enforces uniqueness; map the race to a conflict.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fiber.NewError(fiber.StatusConflict, "Student is already enrolled for this academic year")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create enrollment")
	}

	services.Notify("newData", "A new enrollment has been added.")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    e,
		"message": "Student enrolled successfully",
	})
}

// GetEnrollmentsAPI lists enrollments for the active academic year.
func GetEnrollmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	period, err := database.GetCurrentPeriod(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve current period")
	}
	if period.AcademicYear == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    []*models.Enrollment{},
		})
	}

	enrollments, err := database.ListEnrollments(db, period.AcademicYear.ID, c.Query("search"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enrollments,
	})
}
