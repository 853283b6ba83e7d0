package assessments

import (
	"database/sql"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/dhiee1598/vdps-sfrms/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateAssessmentRequest is the body of POST /api/assessments. Fees carries
// the grade-level-fee ids the cashier selected; they are translated to their
// parent generic fee ids before storage.
type CreateAssessmentRequest struct {
	EnrollmentID   int    `json:"enrollment_id" validate:"required,gt=0"`
	StudentID      string `json:"student_id" validate:"required"`
	Fees           []int  `json:"fees" validate:"required,min=1,dive,gt=0"`
	IsESCGrant     bool   `json:"is_esc_grant"`
	IsCashDiscount bool   `json:"is_cash_discount"`
}

// CreateAssessmentAPI assesses a student for an enrollment: resolves the
// selected fees, applies discount/grant rules, carries forward any unpaid
// balance from the student's previous assessment and persists the result.
func CreateAssessmentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid data provided: "+err.Error())
	}

	exists, err := database.AssessmentExists(db, req.EnrollmentID, req.StudentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing assessment")
	}
	if exists {
		return fiber.NewError(fiber.StatusConflict, "Student is already assessed for this enrollment")
	}

	enrollment, err := database.GetEnrollmentByID(db, req.EnrollmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Enrollment record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}

	selectedLines, err := database.GetGradeLevelFeesByIDs(db, req.Fees)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee selections")
	}
	if len(selectedLines) != len(uniqueInts(req.Fees)) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fee selection ids")
	}

	level := models.ClassifyGradeLevel(enrollment.GradeLevelName)
	flags := services.FeeFlags{CashDiscount: req.IsCashDiscount, ESCGrant: req.IsESCGrant}
	resolved, subtotal := services.ResolveFees(selectedLines, level, flags)

	previous, err := database.GetLatestAssessmentForStudent(db, req.StudentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch previous assessment")
	}
	carryIn := services.CarryForward(previous)

	assessment := &models.Assessment{
		EnrollmentID:   req.EnrollmentID,
		StudentID:      req.StudentID,
		TotalAmountDue: services.TotalAmountDue(subtotal, carryIn),
		IsESCGrant:     req.IsESCGrant,
		IsCashDiscount: req.IsCashDiscount,
	}

	feeLines := make([]*models.AssessmentFee, 0, len(resolved))
	for _, line := range resolved {
		feeLines = append(feeLines, &models.AssessmentFee{
			FeeID:         line.FeeID,
			AppliedAmount: line.Amount,
		})
	}

	if err := database.CreateAssessment(db, assessment, feeLines); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create assessment")
	}

	services.Notify("newData", "A new assessment has been added.")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Student successfully assessed",
		"total_due": assessment.TotalAmountDue,
		"data":      assessment,
	})
}

// AssessmentProjection is one GET /api/assessments row: the raw detail plus
// the allocator's view of it.
type AssessmentProjection struct {
	*database.AssessmentDetail
	Computation services.AllocationResult `json:"computation"`
}

// GetAssessmentsAPI returns the paged assessment projection the cashier
// dashboard renders: balances, per-month remainders and payment options.
func GetAssessmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("pageSize", 8)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 8
	}

	period, err := database.GetCurrentPeriod(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve current period")
	}

	filters := database.AssessmentFilters{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if c.Query("allAssessments") != "true" && period.AcademicYear != nil {
		filters.AcademicYearID = period.AcademicYear.ID
	}

	details, total, err := database.ListAssessments(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch assessments")
	}

	projections := make([]AssessmentProjection, 0, len(details))
	for _, detail := range details {
		projections = append(projections, AssessmentProjection{
			AssessmentDetail: detail,
			Computation:      services.Allocate(detail.TotalAmountDue, detail.Transactions, period),
		})
	}

	totalPages := (total + pageSize - 1) / pageSize
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       projections,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": totalPages,
	})
}

func uniqueInts(values []int) []int {
	seen := make(map[int]bool, len(values))
	unique := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}
