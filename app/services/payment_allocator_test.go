package services

import (
	"testing"

	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func junePeriod() models.CurrentPeriod {
	return models.CurrentPeriod{
		AcademicYear: &models.AcademicYear{ID: 1, Name: "2025-2026", StartMonth: "June", Status: true},
	}
}

func paidTxn(items ...*models.TransactionItem) *models.Transaction {
	return &models.Transaction{Status: models.TransactionPaid, Items: items}
}

func pendingTxn(items ...*models.TransactionItem) *models.Transaction {
	return &models.Transaction{Status: models.TransactionPending, Items: items}
}

func item(itemType string, category models.ItemCategory, amount string) *models.TransactionItem {
	return &models.TransactionItem{
		ItemType: itemType,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestAllocateDownpaymentWalksMonths(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		paidTxn(item("Downpayment", models.CategoryDownpayment, "2500")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.TotalPaid.Equal(decimal.NewFromInt(2500)), "got %s", result.TotalPaid)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(7500)), "got %s", result.Balance)

	// 2500 of unallocated credit covers June and July and leaves 500 in August
	assert.True(t, result.RemainingPerMonth["June"].IsZero())
	assert.True(t, result.RemainingPerMonth["July"].IsZero())
	assert.True(t, result.RemainingPerMonth["August"].Equal(decimal.NewFromInt(500)), "got %s", result.RemainingPerMonth["August"])
	assert.True(t, result.RemainingPerMonth["September"].Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.RemainingPerMonth["March"].Equal(decimal.NewFromInt(1000)))

	// next partially-covered month first, then the full settlement option
	assert.Equal(t, []string{"August", "Full Payment"}, result.AvailableOptions)
	assert.False(t, result.HasPendingTransaction)
}

func TestAllocateMonthTaggedItemsFillOwnBucket(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		paidTxn(item("September", models.CategoryMonth, "1000")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.RemainingPerMonth["June"].Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.RemainingPerMonth["September"].IsZero())
	assert.Equal(t, []string{"June", "Full Payment"}, result.AvailableOptions)
}

func TestAllocateFullPaymentZeroesEveryBucket(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		paidTxn(item("Downpayment", models.CategoryDownpayment, "2500")),
		paidTxn(item("Full Payment", models.CategoryFullPayment, "7500")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.Balance.IsZero(), "got %s", result.Balance)
	for month, remaining := range result.RemainingPerMonth {
		assert.True(t, remaining.IsZero(), "%s should be zero, got %s", month, remaining)
	}
	assert.Empty(t, result.AvailableOptions)
}

func TestAllocatePendingTuitionSuppressesOptions(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		pendingTxn(item("June", models.CategoryMonth, "1000")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.HasPendingTransaction)
	assert.Empty(t, result.AvailableOptions)
	// pending money is not paid money
	assert.True(t, result.TotalPaid.IsZero())
	assert.True(t, result.Balance.Equal(due))
}

func TestAllocatePendingSundryDoesNotSuppress(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		pendingTxn(item("School Uniform", models.CategorySundry, "850")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.False(t, result.HasPendingTransaction)
	assert.Equal(t, []string{"June", "Full Payment"}, result.AvailableOptions)
}

func TestAllocateSundryItemsExcludedFromLedger(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		paidTxn(
			item("June", models.CategoryMonth, "1000"),
			item("ID Card", models.CategorySundry, "150"),
		),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.TotalPaid.Equal(decimal.NewFromInt(1000)), "got %s", result.TotalPaid)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(9000)))
}

func TestAllocateOutOfWindowMonthStaysOnItsTag(t *testing.T) {
	// An item tagged "April" under an older window survives the year's start
	// month being edited to June. It still counts toward total_paid but must
	// not leak into the current buckets as carry-over credit.
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		paidTxn(item("April", models.CategoryMonth, "1000")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.TotalPaid.Equal(decimal.NewFromInt(1000)), "got %s", result.TotalPaid)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(9000)))
	for month, remaining := range result.RemainingPerMonth {
		assert.True(t, remaining.Equal(decimal.NewFromInt(1000)), "%s should keep its full due, got %s", month, remaining)
	}
	assert.Equal(t, []string{"June", "Full Payment"}, result.AvailableOptions)
}

func TestAllocateZeroDue(t *testing.T) {
	result := Allocate(decimal.Zero, nil, junePeriod())

	assert.True(t, result.TotalPaid.IsZero())
	assert.True(t, result.Balance.IsZero())
	assert.Empty(t, result.RemainingPerMonth)
	assert.Empty(t, result.AvailableOptions)
}

func TestAllocateSettledLedgerOffersNothing(t *testing.T) {
	due := decimal.NewFromInt(10000)
	txns := []*models.Transaction{
		paidTxn(item("Downpayment", models.CategoryDownpayment, "10000")),
	}

	result := Allocate(due, txns, junePeriod())

	assert.True(t, result.Balance.IsZero())
	assert.Empty(t, result.AvailableOptions)
	for month, remaining := range result.RemainingPerMonth {
		assert.True(t, remaining.IsZero(), "%s should be zero, got %s", month, remaining)
	}
}

func TestSumPaidTuition(t *testing.T) {
	txns := []*models.Transaction{
		paidTxn(
			item("Downpayment", models.CategoryDownpayment, "2500"),
			item("School Uniform", models.CategorySundry, "850"),
		),
		paidTxn(item("June", models.CategoryMonth, "1000")),
		pendingTxn(item("July", models.CategoryMonth, "1000")),
	}

	total := SumPaidTuition(txns)
	require.True(t, total.Equal(decimal.NewFromInt(3500)), "got %s", total)

	// resumming the same rows yields the same total
	assert.True(t, SumPaidTuition(txns).Equal(total))
}

func TestHasTuitionItems(t *testing.T) {
	assert.False(t, HasTuitionItems(nil))
	assert.False(t, HasTuitionItems([]*models.TransactionItem{
		item("School Uniform", models.CategorySundry, "850"),
	}))
	assert.True(t, HasTuitionItems([]*models.TransactionItem{
		item("School Uniform", models.CategorySundry, "850"),
		item("June", models.CategoryMonth, "1000"),
	}))
}
