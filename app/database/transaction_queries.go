package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CreateTransaction inserts a transaction and its items as one atomic unit.
// When the transaction is created already paid (cashier confirmation at the
// counter), the settled-assessment guard and the total_paid resummation run
// inside the same database transaction, with the assessment row locked
// against concurrent writers.
func CreateTransaction(db *sql.DB, txn *models.Transaction, items []*models.TransactionItem) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if txn.Status == models.TransactionPaid && hasTuitionItems(items) {
		settled, err := settledLocked(tx, txn.AssessmentID)
		if err != nil {
			return err
		}
		if settled {
			return ErrAssessmentSettled
		}
	}

	query := `INSERT INTO transactions (transaction_id, assessment_id, student_id, total_amount, status, date_paid)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err = tx.QueryRow(query, txn.TransactionID, txn.AssessmentID, txn.StudentID,
		txn.TotalAmount, txn.Status, txn.DatePaid).Scan(&txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %v", err)
	}

	for _, item := range items {
		err = tx.QueryRow(`INSERT INTO transaction_items (transaction_id, item_type, category, amount)
						   VALUES ($1, $2, $3, $4) RETURNING id`,
			txn.TransactionID, item.ItemType, item.Category, item.Amount).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert transaction item: %v", err)
		}
		item.TransactionID = txn.TransactionID
	}
	txn.Items = items

	if txn.Status == models.TransactionPaid {
		if err := resumAssessmentTotalPaid(tx, txn.AssessmentID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetTransactionByID fetches a transaction with its items.
func GetTransactionByID(db *sql.DB, transactionID string) (*models.Transaction, error) {
	txn := &models.Transaction{}
	query := `SELECT transaction_id, assessment_id, student_id, total_amount, status, date_paid, created_at
			  FROM transactions WHERE transaction_id = $1`
	err := db.QueryRow(query, transactionID).Scan(
		&txn.TransactionID, &txn.AssessmentID, &txn.StudentID, &txn.TotalAmount,
		&txn.Status, &txn.DatePaid, &txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT id, transaction_id, item_type, category, amount
						   FROM transaction_items WHERE transaction_id = $1 ORDER BY id`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.TransactionItem{}
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ItemType, &item.Category, &item.Amount); err != nil {
			return nil, err
		}
		txn.Items = append(txn.Items, item)
	}
	return txn, rows.Err()
}

// RowQuerier is the subset of *sql.DB and *sql.Tx the guard queries need.
type RowQuerier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// AssessmentHasPaidFullPayment reports whether a paid transaction with a
// Full Payment item already exists for the assessment.
func AssessmentHasPaidFullPayment(q RowQuerier, assessmentID int) (bool, error) {
	var count int
	query := `SELECT COUNT(*)
			  FROM transactions t
			  JOIN transaction_items ti ON ti.transaction_id = t.transaction_id
			  WHERE t.assessment_id = $1 AND t.status = $2 AND ti.category = $3`
	err := q.QueryRow(query, assessmentID, models.TransactionPaid, models.CategoryFullPayment).Scan(&count)
	return count > 0, err
}

// settledLocked locks the assessment row, then checks for a paid Full
// Payment. Taking the row lock first serializes concurrent writers, so the
// guard cannot be raced past between check and commit.
func settledLocked(tx *sql.Tx, assessmentID int) (bool, error) {
	var current decimal.Decimal
	if err := tx.QueryRow(`SELECT total_paid FROM assessments WHERE id = $1 FOR UPDATE`, assessmentID).Scan(&current); err != nil {
		return false, err
	}
	return AssessmentHasPaidFullPayment(tx, assessmentID)
}

func hasTuitionItems(items []*models.TransactionItem) bool {
	for _, item := range items {
		if item.Category.CountsTowardTuition() {
			return true
		}
	}
	return false
}

// MarkTransactionPaid performs the pending -> paid transition and resums the
// owning assessment's total_paid in the same database transaction. The
// assessment row is locked before anything else, so two concurrent
// confirmations serialize there: the loser re-runs the settled guard against
// the winner's committed rows instead of a stale snapshot.
func MarkTransactionPaid(db *sql.DB, transactionID string, assessmentID int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tuitionItems int
	err = tx.QueryRow(`SELECT COUNT(*) FROM transaction_items WHERE transaction_id = $1 AND category <> $2`,
		transactionID, models.CategorySundry).Scan(&tuitionItems)
	if err != nil {
		return err
	}
	if tuitionItems > 0 {
		settled, err := settledLocked(tx, assessmentID)
		if err != nil {
			return err
		}
		if settled {
			return ErrAssessmentSettled
		}
	}

	result, err := tx.Exec(`UPDATE transactions SET status = $1, date_paid = $2
							WHERE transaction_id = $3 AND status = $4`,
		models.TransactionPaid, time.Now(), transactionID, models.TransactionPending)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if err := resumAssessmentTotalPaid(tx, assessmentID); err != nil {
		return err
	}
	return tx.Commit()
}

// CancelTransaction deletes a pending transaction and its items atomically.
// Returns sql.ErrNoRows when the transaction is not pending (or gone), so
// paid rows are never touched.
func CancelTransaction(db *sql.DB, transactionID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status models.TransactionStatus
	err = tx.QueryRow(`SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE`,
		transactionID).Scan(&status)
	if err != nil {
		return err
	}
	if status != models.TransactionPending {
		return ErrNotCancellable
	}

	if _, err := tx.Exec(`DELETE FROM transaction_items WHERE transaction_id = $1`, transactionID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM transactions WHERE transaction_id = $1`, transactionID); err != nil {
		return err
	}
	return tx.Commit()
}

// ErrNotCancellable marks a cancel attempt on a non-pending transaction.
var ErrNotCancellable = fmt.Errorf("only pending transactions can be cancelled")

// ErrAssessmentSettled marks a tuition payment against an assessment that
// already has a paid Full Payment.
var ErrAssessmentSettled = fmt.Errorf("assessment is already fully paid")

// RecomputeAssessmentTotalPaid resums one assessment's total_paid outside a
// payment flow (the nightly audit). Returns the resummed total.
func RecomputeAssessmentTotalPaid(db *sql.DB, assessmentID int) (decimal.Decimal, error) {
	tx, err := db.Begin()
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	total, err := resumLocked(tx, assessmentID)
	if err != nil {
		return decimal.Zero, err
	}
	return total, tx.Commit()
}

// resumAssessmentTotalPaid re-derives total_paid from the paid rows inside
// an open database transaction.
func resumAssessmentTotalPaid(tx *sql.Tx, assessmentID int) error {
	_, err := resumLocked(tx, assessmentID)
	return err
}

func resumLocked(tx *sql.Tx, assessmentID int) (decimal.Decimal, error) {
	// Lock the aggregate row before reading the items it is derived from.
	var current decimal.Decimal
	err := tx.QueryRow(`SELECT total_paid FROM assessments WHERE id = $1 FOR UPDATE`, assessmentID).Scan(&current)
	if err != nil {
		return decimal.Zero, err
	}

	rows, err := tx.Query(`SELECT ti.category, ti.amount
						   FROM transactions t
						   JOIN transaction_items ti ON ti.transaction_id = t.transaction_id
						   WHERE t.assessment_id = $1 AND t.status = $2`,
		assessmentID, models.TransactionPaid)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var category models.ItemCategory
		var amount decimal.Decimal
		if err := rows.Scan(&category, &amount); err != nil {
			return decimal.Zero, err
		}
		if category.CountsTowardTuition() {
			total = total.Add(amount).Round(2)
		}
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, err
	}

	if _, err := tx.Exec(`UPDATE assessments SET total_paid = $1 WHERE id = $2`, total, assessmentID); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// TransactionFilters narrow the transaction listing.
type TransactionFilters struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// ListTransactions returns transactions with items and student names.
func ListTransactions(db *sql.DB, filters TransactionFilters) ([]*models.Transaction, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		args = append(args, pattern)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(t.transaction_id) LIKE $%d OR LOWER(st.id) LIKE $%d OR LOWER(st.first_name) LIKE $%d OR LOWER(st.last_name) LIKE $%d)",
			n, n, n, n))
	}

	query := fmt.Sprintf(`SELECT t.transaction_id, t.assessment_id, t.student_id, t.total_amount, t.status, t.date_paid, t.created_at,
			st.first_name, st.last_name
		FROM transactions t
		JOIN students st ON st.id = t.student_id
		WHERE %s
		ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	byID := make(map[string]*models.Transaction)
	var ids []string
	for rows.Next() {
		txn := &models.Transaction{Items: []*models.TransactionItem{}}
		var firstName, lastName string
		if err := rows.Scan(&txn.TransactionID, &txn.AssessmentID, &txn.StudentID, &txn.TotalAmount,
			&txn.Status, &txn.DatePaid, &txn.CreatedAt, &firstName, &lastName); err != nil {
			return nil, err
		}
		txn.StudentName = firstName + " " + lastName
		transactions = append(transactions, txn)
		byID[txn.TransactionID] = txn
		ids = append(ids, txn.TransactionID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return transactions, nil
	}

	itemRows, err := db.Query(`SELECT id, transaction_id, item_type, category, amount
							   FROM transaction_items WHERE transaction_id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item := &models.TransactionItem{}
		if err := itemRows.Scan(&item.ID, &item.TransactionID, &item.ItemType, &item.Category, &item.Amount); err != nil {
			return nil, err
		}
		if txn, ok := byID[item.TransactionID]; ok {
			txn.Items = append(txn.Items, item)
		}
	}
	return transactions, itemRows.Err()
}

// TransactionStats summarize collections for the cashier dashboard.
type TransactionStats struct {
	TotalTransactions   int             `json:"total_transactions"`
	PendingTransactions int             `json:"pending_transactions"`
	PaidTransactions    int             `json:"paid_transactions"`
	CollectedToday      decimal.Decimal `json:"collected_today"`
	CollectedTotal      decimal.Decimal `json:"collected_total"`
}

func GetTransactionStats(db *sql.DB) (*TransactionStats, error) {
	stats := &TransactionStats{CollectedToday: decimal.Zero, CollectedTotal: decimal.Zero}
	query := `SELECT COUNT(*),
				COUNT(CASE WHEN status = 'pending' THEN 1 END),
				COUNT(CASE WHEN status = 'paid' THEN 1 END),
				COALESCE(SUM(CASE WHEN status = 'paid' AND date_paid::date = CURRENT_DATE THEN total_amount END), 0),
				COALESCE(SUM(CASE WHEN status = 'paid' THEN total_amount END), 0)
			  FROM transactions`
	err := db.QueryRow(query).Scan(
		&stats.TotalTransactions, &stats.PendingTransactions, &stats.PaidTransactions,
		&stats.CollectedToday, &stats.CollectedTotal,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
