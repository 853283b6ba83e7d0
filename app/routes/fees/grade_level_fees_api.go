package fees

import (
	"database/sql"
	"strconv"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GradeLevelFeeRequest prices a fee for a grade level/strand. Amount is a
// string so malformed numbers are rejected instead of silently zeroed.
type GradeLevelFeeRequest struct {
	GradeLevelID int    `json:"grade_level_id" validate:"required,gt=0"`
	StrandID     *int   `json:"strand_id"`
	FeeID        int    `json:"fee_id" validate:"required,gt=0"`
	Amount       string `json:"amount" validate:"required"`
}

func (r *GradeLevelFeeRequest) toModel() (*models.GradeLevelFee, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, errNegativeAmount
	}
	return &models.GradeLevelFee{
		GradeLevelID: r.GradeLevelID,
		StrandID:     r.StrandID,
		FeeID:        r.FeeID,
		Amount:       amount.Round(2),
	}, nil
}

var errNegativeAmount = fiber.NewError(fiber.StatusBadRequest, "Amount cannot be negative")

// GetGradeLevelFeesAPI lists all priced rows, or the resolved applicable set
// when grade_level_id is given (strand-specific rows shadow null-strand
// rows).
func GetGradeLevelFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	gradeLevelID := c.QueryInt("grade_level_id", 0)

	if gradeLevelID > 0 {
		var strandID *int
		if sid := c.QueryInt("strand_id", 0); sid > 0 {
			strandID = &sid
		}
		lines, err := database.GetApplicableGradeLevelFees(db, gradeLevelID, strandID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grade level fees")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    lines,
		})
	}

	lines, err := database.ListGradeLevelFees(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grade level fees")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    lines,
	})
}

// CreateGradeLevelFeeAPI prices a fee for a grade level/strand.
func CreateGradeLevelFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req GradeLevelFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid data provided: "+err.Error())
	}

	glf, err := req.toModel()
	if err != nil {
		if err == errNegativeAmount {
			return err
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid amount: "+req.Amount)
	}

	if err := database.CreateGradeLevelFee(db, glf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create grade level fee")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    glf,
		"message": "Grade level fee created successfully",
	})
}

// UpdateGradeLevelFeeAPI reprices an existing row.
func UpdateGradeLevelFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid grade level fee id")
	}

	var req GradeLevelFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid data provided: "+err.Error())
	}

	glf, err := req.toModel()
	if err != nil {
		if err == errNegativeAmount {
			return err
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid amount: "+req.Amount)
	}
	glf.ID = id

	if err := database.UpdateGradeLevelFee(db, glf); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Grade level fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update grade level fee")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Grade level fee updated successfully",
	})
}
