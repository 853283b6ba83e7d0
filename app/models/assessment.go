package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assessment is the financial statement for one enrollment. At most one
// exists per (enrollment, student). TotalPaid is never taken from client
// input; it is always re-derived by summing the tuition-bearing items of
// paid transactions.
type Assessment struct {
	ID             int             `json:"id" gorm:"primaryKey;autoIncrement"`
	EnrollmentID   int             `json:"enrollment_id" gorm:"not null;index" validate:"required"`
	StudentID      string          `json:"student_id" gorm:"not null;index;type:varchar(255)" validate:"required"`
	TotalAmountDue decimal.Decimal `json:"total_amount_due" gorm:"not null;type:decimal(10,2)"`
	TotalPaid      decimal.Decimal `json:"total_paid" gorm:"not null;type:decimal(10,2);default:0"`
	IsESCGrant     bool            `json:"is_esc_grant" gorm:"default:false"`
	IsCashDiscount bool            `json:"is_cash_discount" gorm:"default:false"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// Balance is what the student still owes, clamped so it never goes negative.
func (a *Assessment) Balance() decimal.Decimal {
	balance := a.TotalAmountDue.Sub(a.TotalPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// AssessmentFee links an assessment to one generic fee it charges, with the
// amount that was applied at assessment time.
type AssessmentFee struct {
	AssessmentID  int             `json:"assessment_id" gorm:"primaryKey"`
	FeeID         int             `json:"fee_id" gorm:"primaryKey"`
	AppliedAmount decimal.Decimal `json:"applied_amount" gorm:"not null;type:decimal(10,2)"`

	FeeName        string `json:"fee_name,omitempty" gorm:"-"`
	FeeDescription string `json:"fee_description,omitempty" gorm:"-"`
}
