package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

const (
	selectStatusQuery    = `SELECT status FROM transactions WHERE transaction_id`
	lockAssessmentQuery  = `SELECT total_paid FROM assessments WHERE id`
	tuitionCountQuery    = `SELECT COUNT\(\*\) FROM transaction_items WHERE transaction_id`
	updateTxnQuery       = `UPDATE transactions SET status`
	resumItemsQuery      = `SELECT ti\.category, ti\.amount`
	writeTotalPaidQuery  = `UPDATE assessments SET total_paid`
	deleteItemsQuery     = `DELETE FROM transaction_items WHERE transaction_id`
	deleteTxnQuery       = `DELETE FROM transactions WHERE transaction_id`
	insertTxnQuery       = `INSERT INTO transactions`
	insertItemQuery      = `INSERT INTO transaction_items`
	fullPaymentCountsSQL = `AND ti\.category =`
)

func expectFullPaymentCheck(mock sqlmock.Sqlmock, assessmentID, count int) {
	mock.ExpectQuery(lockAssessmentQuery).WithArgs(assessmentID).
		WillReturnRows(sqlmock.NewRows([]string{"total_paid"}).AddRow("0"))
	mock.ExpectQuery(fullPaymentCountsSQL).
		WithArgs(assessmentID, models.TransactionPaid, models.CategoryFullPayment).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func expectResummation(mock sqlmock.Sqlmock, assessmentID int, total string, itemRows *sqlmock.Rows) {
	mock.ExpectQuery(lockAssessmentQuery).WithArgs(assessmentID).
		WillReturnRows(sqlmock.NewRows([]string{"total_paid"}).AddRow("0"))
	mock.ExpectQuery(resumItemsQuery).WithArgs(assessmentID, models.TransactionPaid).
		WillReturnRows(itemRows)
	mock.ExpectExec(writeTotalPaidQuery).
		WithArgs(decimal.RequireFromString(total), assessmentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestCancelTransactionDeletesPendingAtomically(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectStatusQuery).WithArgs("txn-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec(deleteItemsQuery).WithArgs("txn-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(deleteTxnQuery).WithArgs("txn-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, CancelTransaction(db, "txn-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTransactionRejectsPaid(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectStatusQuery).WithArgs("txn-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
	mock.ExpectRollback()

	err := CancelTransaction(db, "txn-1")
	assert.Equal(t, ErrNotCancellable, err)
	// no delete was attempted; the paid rows are untouched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTransactionMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectStatusQuery).WithArgs("txn-9").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := CancelTransaction(db, "txn-9")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransactionPaidResumsTotal(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(tuitionCountQuery).WithArgs("txn-1", models.CategorySundry).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	expectFullPaymentCheck(mock, 7, 0)
	mock.ExpectExec(updateTxnQuery).
		WithArgs(models.TransactionPaid, sqlmock.AnyArg(), "txn-1", models.TransactionPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// sundry item excluded from the resummed total
	expectResummation(mock, 7, "1100", sqlmock.NewRows([]string{"category", "amount"}).
		AddRow("month", "1000").
		AddRow("downpayment", "100").
		AddRow("sundry", "150"))
	mock.ExpectCommit()

	require.NoError(t, MarkTransactionPaid(db, "txn-1", 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransactionPaidLostRace(t *testing.T) {
	db, mock := newMockDB(t)

	// another confirmation won: the guarded UPDATE matches zero rows and the
	// transition must not resum or commit
	mock.ExpectBegin()
	mock.ExpectQuery(tuitionCountQuery).WithArgs("txn-1", models.CategorySundry).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	expectFullPaymentCheck(mock, 7, 0)
	mock.ExpectExec(updateTxnQuery).
		WithArgs(models.TransactionPaid, sqlmock.AnyArg(), "txn-1", models.TransactionPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := MarkTransactionPaid(db, "txn-1", 7)
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransactionPaidSettledAssessment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(tuitionCountQuery).WithArgs("txn-1", models.CategorySundry).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	expectFullPaymentCheck(mock, 7, 1)
	mock.ExpectRollback()

	err := MarkTransactionPaid(db, "txn-1", 7)
	assert.Equal(t, ErrAssessmentSettled, err)
	// the pending transaction was left untouched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransactionPaidSundryOnlySkipsGuard(t *testing.T) {
	db, mock := newMockDB(t)

	// a uniform purchase confirms even against a settled assessment
	mock.ExpectBegin()
	mock.ExpectQuery(tuitionCountQuery).WithArgs("txn-1", models.CategorySundry).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(updateTxnQuery).
		WithArgs(models.TransactionPaid, sqlmock.AnyArg(), "txn-1", models.TransactionPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectResummation(mock, 7, "0", sqlmock.NewRows([]string{"category", "amount"}).
		AddRow("sundry", "850"))
	mock.ExpectCommit()

	require.NoError(t, MarkTransactionPaid(db, "txn-1", 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionPendingInsertsAtomically(t *testing.T) {
	db, mock := newMockDB(t)

	txn := &models.Transaction{
		TransactionID: "txn-1",
		AssessmentID:  7,
		StudentID:     "S-001",
		TotalAmount:   decimal.RequireFromString("1000"),
		Status:        models.TransactionPending,
	}
	items := []*models.TransactionItem{
		{ItemType: "June", Category: models.CategoryMonth, Amount: decimal.RequireFromString("1000")},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(insertTxnQuery).
		WithArgs("txn-1", 7, "S-001", txn.TotalAmount, models.TransactionPending, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery(insertItemQuery).
		WithArgs("txn-1", "June", models.CategoryMonth, items[0].Amount).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, CreateTransaction(db, txn, items))
	// pending money never touches the assessment aggregate
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "txn-1", items[0].TransactionID)
}

func TestCreateTransactionPaidResumsInSameUnit(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	txn := &models.Transaction{
		TransactionID: "txn-1",
		AssessmentID:  7,
		StudentID:     "S-001",
		TotalAmount:   decimal.RequireFromString("2500"),
		Status:        models.TransactionPaid,
		DatePaid:      &now,
	}
	items := []*models.TransactionItem{
		{ItemType: "Downpayment", Category: models.CategoryDownpayment, Amount: decimal.RequireFromString("2500")},
	}

	mock.ExpectBegin()
	expectFullPaymentCheck(mock, 7, 0)
	mock.ExpectQuery(insertTxnQuery).
		WithArgs("txn-1", 7, "S-001", txn.TotalAmount, models.TransactionPaid, &now).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectQuery(insertItemQuery).
		WithArgs("txn-1", "Downpayment", models.CategoryDownpayment, items[0].Amount).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	expectResummation(mock, 7, "2500", sqlmock.NewRows([]string{"category", "amount"}).
		AddRow("downpayment", "2500"))
	mock.ExpectCommit()

	require.NoError(t, CreateTransaction(db, txn, items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionPaidRejectsSettledAssessment(t *testing.T) {
	db, mock := newMockDB(t)

	txn := &models.Transaction{
		TransactionID: "txn-1",
		AssessmentID:  7,
		StudentID:     "S-001",
		TotalAmount:   decimal.RequireFromString("1000"),
		Status:        models.TransactionPaid,
	}
	items := []*models.TransactionItem{
		{ItemType: "June", Category: models.CategoryMonth, Amount: decimal.RequireFromString("1000")},
	}

	mock.ExpectBegin()
	expectFullPaymentCheck(mock, 7, 1)
	mock.ExpectRollback()

	err := CreateTransaction(db, txn, items)
	assert.Equal(t, ErrAssessmentSettled, err)
	// nothing was inserted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentHasPaidFullPayment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(fullPaymentCountsSQL).
		WithArgs(7, models.TransactionPaid, models.CategoryFullPayment).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	settled, err := AssessmentHasPaidFullPayment(db, 7)
	require.NoError(t, err)
	assert.True(t, settled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
