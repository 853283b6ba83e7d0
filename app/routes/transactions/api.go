package transactions

import (
	"database/sql"
	"time"

	"github.com/dhiee1598/vdps-sfrms/app/database"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/dhiee1598/vdps-sfrms/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// TransactionItemRequest is one line of a payment. Amount arrives as a
// string and must parse as a positive decimal; bad numerics are rejected,
// never coerced to zero.
type TransactionItemRequest struct {
	ItemType string `json:"item_type" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
}

// CreateTransactionRequest is the body of POST /api/transactions.
type CreateTransactionRequest struct {
	AssessmentID int                      `json:"assessment_id" validate:"required,gt=0"`
	StudentID    string                   `json:"student_id" validate:"required"`
	Items        []TransactionItemRequest `json:"transaction_items" validate:"required,min=1,dive"`
	Paid         bool                     `json:"status"`
}

// CreateTransactionAPI records a payment attempt. The transaction and its
// items are inserted atomically; a transaction created directly as paid also
// resums the assessment's total_paid in the same database transaction.
func CreateTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid data provided: "+err.Error())
	}

	assessment, err := database.GetAssessmentByID(db, req.AssessmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Assessment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch assessment")
	}

	period, err := database.GetCurrentPeriod(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve current period")
	}
	months := period.Months()

	items := make([]*models.TransactionItem, 0, len(req.Items))
	total := decimal.Zero
	for _, itemReq := range req.Items {
		amount, err := decimal.NewFromString(itemReq.Amount)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid amount: "+itemReq.Amount)
		}
		if !amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "Item amount must be greater than zero")
		}
		amount = amount.Round(2)
		items = append(items, &models.TransactionItem{
			ItemType: itemReq.ItemType,
			Category: models.ClassifyItemType(itemReq.ItemType, months),
			Amount:   amount,
		})
		total = total.Add(amount).Round(2)
	}

	// Fully settled assessments accept sundry purchases only.
	if req.Paid && services.HasTuitionItems(items) {
		settled, err := database.AssessmentHasPaidFullPayment(db, assessment.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check full payment status")
		}
		if settled {
			return fiber.NewError(fiber.StatusConflict, "This assessment is already fully paid.")
		}
	}

	txn := &models.Transaction{
		TransactionID: uuid.NewString(),
		AssessmentID:  req.AssessmentID,
		StudentID:     req.StudentID,
		TotalAmount:   total,
		Status:        models.TransactionPending,
	}
	if req.Paid {
		now := time.Now()
		txn.Status = models.TransactionPaid
		txn.DatePaid = &now
	}

	if err := database.CreateTransaction(db, txn, items); err != nil {
		if err == database.ErrAssessmentSettled {
			// A concurrent payment settled the assessment after the check above.
			return fiber.NewError(fiber.StatusConflict, "This assessment is already fully paid.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create transaction")
	}

	services.Notify("newData", "A new transaction has been added.")
	services.Notify("newTransaction", "A new transaction has been added.")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Transaction created successfully.",
		"data":    txn,
	})
}

// UpdateTransactionAPI transitions a pending transaction to paid. Paid is
// terminal: nothing else can be updated, and the transition happens at most
// once. The owning assessment's total_paid is resummed from all of its paid
// items rather than incremented, so a retried confirmation cannot
// double-count.
func UpdateTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Transaction ID is required")
	}

	type UpdateRequest struct {
		Status models.TransactionStatus `json:"status"`
	}
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Status != models.TransactionPaid {
		return fiber.NewError(fiber.StatusBadRequest, "Transactions can only transition to paid")
	}

	txn, err := database.GetTransactionByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transaction")
	}
	if txn.Status != models.TransactionPending {
		return fiber.NewError(fiber.StatusBadRequest, "Only pending transactions can be confirmed")
	}

	if services.HasTuitionItems(txn.Items) {
		settled, err := database.AssessmentHasPaidFullPayment(db, txn.AssessmentID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check full payment status")
		}
		if settled {
			return fiber.NewError(fiber.StatusConflict, "This assessment is already fully paid.")
		}
	}

	if err := database.MarkTransactionPaid(db, id, txn.AssessmentID); err != nil {
		if err == sql.ErrNoRows {
			// Lost the race with another confirmation.
			return fiber.NewError(fiber.StatusBadRequest, "Only pending transactions can be confirmed")
		}
		if err == database.ErrAssessmentSettled {
			return fiber.NewError(fiber.StatusConflict, "This assessment is already fully paid.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update transaction")
	}

	services.Notify("newData", "A transaction has been updated.")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Transaction & assessment updated successfully",
	})
}

// CancelTransactionAPI cancels a pending transaction, removing it and its
// items in one unit. Paid transactions cannot be cancelled.
func CancelTransactionAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Transaction ID is required")
	}

	err := database.CancelTransaction(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		if err == database.ErrNotCancellable {
			return fiber.NewError(fiber.StatusBadRequest, "Only pending transactions can be cancelled")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel transaction")
	}

	services.Notify("newData", "A transaction has been cancelled.")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Transaction cancelled successfully",
	})
}

// GetTransactionsAPI lists transactions with their items.
func GetTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.TransactionFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}

	transactions, err := database.ListTransactions(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    transactions,
	})
}

// GetTransactionStatsAPI returns collection totals for the cashier overview.
func GetTransactionStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetTransactionStats(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transaction stats")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
