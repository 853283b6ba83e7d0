package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one payment attempt against an assessment. Created pending
// (or directly paid at cashier confirmation); pending may transition to paid
// exactly once or be cancelled; paid is terminal.
type Transaction struct {
	TransactionID string            `json:"transaction_id" gorm:"primaryKey;type:varchar(36)"`
	AssessmentID  int               `json:"assessment_id" gorm:"not null;index" validate:"required"`
	StudentID     string            `json:"student_id" gorm:"not null;index;type:varchar(255)" validate:"required"`
	TotalAmount   decimal.Decimal   `json:"total_amount" gorm:"not null;type:decimal(10,2)"`
	Status        TransactionStatus `json:"status" gorm:"not null;default:'pending';type:varchar(20)"`
	DatePaid      *time.Time        `json:"date_paid,omitempty"`
	CreatedAt     time.Time         `json:"created_at" gorm:"autoCreateTime"`

	Items       []*TransactionItem `json:"items,omitempty" gorm:"-"`
	StudentName string             `json:"student_name,omitempty" gorm:"-"`
}

// TransactionItem is one line within a transaction. Category is assigned by
// ClassifyItemType when the item is created and stored with the row; items
// are cascade-deleted when their pending transaction is cancelled.
type TransactionItem struct {
	ID            int             `json:"id" gorm:"primaryKey;autoIncrement"`
	TransactionID string          `json:"transaction_id" gorm:"not null;index;type:varchar(36)"`
	ItemType      string          `json:"item_type" gorm:"not null" validate:"required"`
	Category      ItemCategory    `json:"category" gorm:"not null;type:varchar(20)"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:decimal(10,2)"`
}
