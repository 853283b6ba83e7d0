package services

import (
	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/shopspring/decimal"
)

// FeeFlags are the adjustments a cashier can apply during assessment.
type FeeFlags struct {
	CashDiscount bool
	ESCGrant     bool
}

// ResolvedFeeLine is one charge after discount/grant adjustments. FeeID is
// the generic fee id (what assessments store), not the priced
// grade-level-fee id clients select.
type ResolvedFeeLine struct {
	FeeID   int
	FeeName string
	Amount  decimal.Decimal
}

const tuitionFeeName = "Tuition Fee"

var (
	cashDiscountRate = decimal.RequireFromString("0.96")
	jhsESCGrant      = decimal.NewFromInt(9000)
)

// ResolveFees applies discount and grant rules to the priced fee lines of an
// enrollment and returns the adjusted lines with their subtotal.
//
// Rules, in order:
//   - cash discount takes 4% off the Tuition Fee line
//   - an ESC grant on senior high waives the Tuition Fee entirely
//   - an ESC grant on junior high subtracts a flat 9,000 from the subtotal
//   - the subtotal is clamped at zero and rounded UP to the next whole peso
//     so rounding never under-collects
//
// An empty line set resolves to a zero subtotal; the caller decides whether
// that is an error.
func ResolveFees(lines []*models.GradeLevelFee, level models.GradeLevelClass, flags FeeFlags) ([]ResolvedFeeLine, decimal.Decimal) {
	resolved := make([]ResolvedFeeLine, 0, len(lines))
	subtotal := decimal.Zero

	for _, line := range lines {
		amount := line.Amount

		if flags.CashDiscount && line.FeeName == tuitionFeeName {
			amount = round2(amount.Mul(cashDiscountRate))
		}

		if level == models.LevelSenior && flags.ESCGrant && line.FeeName == tuitionFeeName {
			amount = decimal.Zero
		}

		resolved = append(resolved, ResolvedFeeLine{
			FeeID:   line.FeeID,
			FeeName: line.FeeName,
			Amount:  amount,
		})
		subtotal = round2(subtotal.Add(amount))
	}

	if level == models.LevelJunior && flags.ESCGrant {
		subtotal = round2(subtotal.Sub(jhsESCGrant))
	}

	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}

	return resolved, subtotal.Ceil()
}

// CarryForward is the outstanding balance an earlier assessment passes into
// a new one: max(0, previous due - previous paid). This is the single
// carry-forward policy; advance transactions are never auto-linked.
func CarryForward(previous *models.Assessment) decimal.Decimal {
	if previous == nil {
		return decimal.Zero
	}
	return previous.Balance()
}

// TotalAmountDue combines the resolved subtotal with the carried-forward
// balance, rounded up to the next whole peso.
func TotalAmountDue(subtotal, carryIn decimal.Decimal) decimal.Decimal {
	return subtotal.Add(carryIn).Ceil()
}

// round2 forces 2 decimal places after every arithmetic step so repeated
// additions cannot accumulate drift. Decimal rounding is half-up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
