package fees

import (
	"database/sql"
	"strconv"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetFeesAPI returns all generic fee categories.
func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	fees, err := database.GetFees(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fees")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fees,
	})
}

// CreateFeeAPI creates a new fee category.
func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var fee models.Fee
	if err := c.BodyParser(&fee); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&fee); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Fee name is required")
	}

	if err := database.CreateFee(db, &fee); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fee,
		"message": "Fee created successfully",
	})
}

// UpdateFeeAPI updates a fee category's name/description.
func UpdateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	feeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fee id")
	}

	var fee models.Fee
	if err := c.BodyParser(&fee); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	fee.ID = feeID
	if err := validate.Struct(&fee); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Fee name is required")
	}

	if err := database.UpdateFee(db, &fee); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee updated successfully",
	})
}

// GetGradeLevelsAPI returns the year levels.
func GetGradeLevelsAPI(c *fiber.Ctx, db *sql.DB) error {
	levels, err := database.GetGradeLevels(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grade levels")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    levels,
	})
}

// GetStrandsAPI returns the senior-high strands.
func GetStrandsAPI(c *fiber.Ctx, db *sql.DB) error {
	strands, err := database.GetStrands(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch strands")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    strands,
	})
}
