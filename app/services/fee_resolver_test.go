package services

import (
	"testing"

	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feeLine(feeID int, name string, amount string) *models.GradeLevelFee {
	return &models.GradeLevelFee{
		FeeID:   feeID,
		FeeName: name,
		Amount:  decimal.RequireFromString(amount),
	}
}

func TestResolveFeesNoAdjustments(t *testing.T) {
	lines := []*models.GradeLevelFee{
		feeLine(1, "Tuition Fee", "15000"),
		feeLine(2, "Miscellaneous Fee", "5000"),
	}

	resolved, subtotal := ResolveFees(lines, models.LevelJunior, FeeFlags{})

	require.Len(t, resolved, 2)
	assert.True(t, resolved[0].Amount.Equal(decimal.NewFromInt(15000)), "got %s", resolved[0].Amount)
	assert.True(t, subtotal.Equal(decimal.NewFromInt(20000)), "got %s", subtotal)
}

func TestResolveFeesCashDiscount(t *testing.T) {
	lines := []*models.GradeLevelFee{
		feeLine(1, "Tuition Fee", "15000"),
		feeLine(2, "Miscellaneous Fee", "5000"),
	}

	resolved, subtotal := ResolveFees(lines, models.LevelJunior, FeeFlags{CashDiscount: true})

	// 4% off tuition only
	assert.True(t, resolved[0].Amount.Equal(decimal.NewFromInt(14400)), "got %s", resolved[0].Amount)
	assert.True(t, resolved[1].Amount.Equal(decimal.NewFromInt(5000)), "got %s", resolved[1].Amount)
	assert.True(t, subtotal.Equal(decimal.NewFromInt(19400)), "got %s", subtotal)
}

func TestResolveFeesSeniorESCWaivesTuition(t *testing.T) {
	lines := []*models.GradeLevelFee{
		feeLine(1, "Tuition Fee", "22000"),
		feeLine(2, "Miscellaneous Fee", "6000"),
	}

	resolved, subtotal := ResolveFees(lines, models.LevelSenior, FeeFlags{ESCGrant: true})

	assert.True(t, resolved[0].Amount.IsZero(), "tuition should be waived, got %s", resolved[0].Amount)
	assert.True(t, resolved[1].Amount.Equal(decimal.NewFromInt(6000)))
	assert.True(t, subtotal.Equal(decimal.NewFromInt(6000)), "got %s", subtotal)
}

func TestResolveFeesJuniorESCFlatGrant(t *testing.T) {
	// Grade 9 with ESC: 15000 + 5000 - 9000 = 11000
	lines := []*models.GradeLevelFee{
		feeLine(1, "Tuition Fee", "15000"),
		feeLine(2, "Miscellaneous Fee", "5000"),
	}

	resolved, subtotal := ResolveFees(lines, models.LevelJunior, FeeFlags{ESCGrant: true})

	// the grant hits the subtotal, not any single line
	assert.True(t, resolved[0].Amount.Equal(decimal.NewFromInt(15000)))
	assert.True(t, subtotal.Equal(decimal.NewFromInt(11000)), "got %s", subtotal)
}

func TestResolveFeesClampsAtZero(t *testing.T) {
	lines := []*models.GradeLevelFee{
		feeLine(1, "Tuition Fee", "5000"),
	}

	_, subtotal := ResolveFees(lines, models.LevelJunior, FeeFlags{ESCGrant: true})
	assert.True(t, subtotal.IsZero(), "got %s", subtotal)
}

func TestResolveFeesRoundsUpToWholePeso(t *testing.T) {
	lines := []*models.GradeLevelFee{
		feeLine(1, "Tuition Fee", "10000.25"),
	}

	_, subtotal := ResolveFees(lines, models.LevelJunior, FeeFlags{})
	assert.True(t, subtotal.Equal(decimal.NewFromInt(10001)), "got %s", subtotal)
}

func TestResolveFeesEmpty(t *testing.T) {
	resolved, subtotal := ResolveFees(nil, models.LevelOther, FeeFlags{})
	assert.Empty(t, resolved)
	assert.True(t, subtotal.IsZero())
}

func TestCarryForward(t *testing.T) {
	assert.True(t, CarryForward(nil).IsZero())

	previous := &models.Assessment{
		TotalAmountDue: decimal.NewFromInt(10000),
		TotalPaid:      decimal.NewFromInt(4000),
	}
	assert.True(t, CarryForward(previous).Equal(decimal.NewFromInt(6000)))

	// overpaid ledgers never carry negative balances forward
	previous.TotalPaid = decimal.NewFromInt(12000)
	assert.True(t, CarryForward(previous).IsZero())
}

func TestTotalAmountDue(t *testing.T) {
	due := TotalAmountDue(decimal.RequireFromString("11000.40"), decimal.RequireFromString("2500.10"))
	assert.True(t, due.Equal(decimal.NewFromInt(13501)), "got %s", due)
}
