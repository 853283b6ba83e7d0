package services

import (
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/shopspring/decimal"
)

// AllocationResult is the projection of one assessment's ledger: how much is
// paid, what remains per month bucket, and which payment options the cashier
// should be offered next.
type AllocationResult struct {
	TotalPaid             decimal.Decimal            `json:"total_paid"`
	Balance               decimal.Decimal            `json:"overall_balance"`
	RemainingPerMonth     map[string]decimal.Decimal `json:"remaining_per_month"`
	AvailableOptions      []string                   `json:"available_payment_option"`
	HasPendingTransaction bool                       `json:"has_pending_transaction"`
}

const (
	fullPaymentOption = "Full Payment"
	monthsPerYear     = 10
)

var (
	// balanceTolerance absorbs 2dp rounding residue when deciding whether an
	// assessment is settled.
	balanceTolerance = decimal.RequireFromString("0.01")
	// offerThreshold avoids offering a month whose remainder is a near-zero
	// rounding artifact.
	offerThreshold = decimal.NewFromInt(1)
)

// Allocate projects an assessment's transactions onto the 10 month buckets
// of the school year. It is a pure function of its inputs: the same rows
// always produce the same projection, which is what lets the ledger resum
// totals idempotently.
//
// Only items of paid transactions count toward totalPaid, and only
// tuition-bearing categories at that. Month-tagged items fill their own
// bucket; everything else (downpayments, reservation fees) becomes
// unallocated credit that is walked across the months in school-year order.
// A Full Payment item on a paid transaction zeroes every bucket outright.
func Allocate(totalAmountDue decimal.Decimal, transactions []*models.Transaction, period models.CurrentPeriod) AllocationResult {
	result := AllocationResult{
		TotalPaid:         decimal.Zero,
		Balance:           decimal.Zero,
		RemainingPerMonth: map[string]decimal.Decimal{},
		AvailableOptions:  []string{},
	}

	// Nothing due yet: no amortization to divide.
	if totalAmountDue.IsZero() {
		return result
	}

	months := period.Months()
	perMonthPaid := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		perMonthPaid[m] = decimal.Zero
		result.RemainingPerMonth[m] = decimal.Zero
	}

	hasFullPayment := false
	for _, txn := range transactions {
		switch txn.Status {
		case models.TransactionPaid:
			for _, item := range txn.Items {
				if !item.Category.CountsTowardTuition() {
					continue
				}
				result.TotalPaid = round2(result.TotalPaid.Add(item.Amount))
				if item.Category == models.CategoryMonth {
					perMonthPaid[item.ItemType] = round2(perMonthPaid[item.ItemType].Add(item.Amount))
				}
				if item.Category == models.CategoryFullPayment {
					hasFullPayment = true
				}
			}
		case models.TransactionPending:
			for _, item := range txn.Items {
				if item.Category == models.CategoryMonth || item.Category == models.CategoryFullPayment {
					result.HasPendingTransaction = true
				}
			}
		}
	}

	balance := totalAmountDue.Sub(result.TotalPaid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	result.Balance = round2(balance)

	perMonthDue := round2(totalAmountDue.Div(decimal.NewFromInt(monthsPerYear)))

	if !hasFullPayment && result.Balance.IsPositive() {
		// Money paid without a month tag (downpayments, lump sums) is credit
		// carried across the buckets in school-year order. Month-tagged money
		// stays on its tag even when that month fell out of the window (the
		// year's start month was edited later); it never turns into credit.
		monthTagged := decimal.Zero
		for _, paid := range perMonthPaid {
			monthTagged = round2(monthTagged.Add(paid))
		}
		carryOver := round2(result.TotalPaid.Sub(monthTagged))

		for _, m := range months {
			paid := round2(perMonthPaid[m].Add(carryOver))
			if paid.GreaterThanOrEqual(perMonthDue) {
				result.RemainingPerMonth[m] = decimal.Zero
				carryOver = round2(paid.Sub(perMonthDue))
			} else {
				remaining := round2(perMonthDue.Sub(paid))
				if remaining.IsNegative() {
					remaining = decimal.Zero
				}
				result.RemainingPerMonth[m] = remaining
				carryOver = decimal.Zero
			}
		}
	}

	if !result.HasPendingTransaction && result.Balance.GreaterThan(balanceTolerance) {
		for _, m := range months {
			if result.RemainingPerMonth[m].GreaterThan(offerThreshold) {
				result.AvailableOptions = append(result.AvailableOptions, m)
				break
			}
		}
		result.AvailableOptions = append(result.AvailableOptions, fullPaymentOption)
	}

	return result
}

// SumPaidTuition re-derives total_paid from transaction rows: the sum of
// tuition-bearing items across paid transactions. Resumming is idempotent,
// which is why the ledger prefers it over incrementing a counter.
func SumPaidTuition(transactions []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.Status != models.TransactionPaid {
			continue
		}
		for _, item := range txn.Items {
			if item.Category.CountsTowardTuition() {
				total = round2(total.Add(item.Amount))
			}
		}
	}
	return total
}

// HasTuitionItems reports whether any item in the set is tuition-bearing.
// Sundry-only transactions skip the full-payment conflict guard.
func HasTuitionItems(items []*models.TransactionItem) bool {
	for _, item := range items {
		if item.Category.CountsTowardTuition() {
			return true
		}
	}
	return false
}
