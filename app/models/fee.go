package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee is a named charge category ("Tuition Fee", "Miscellaneous Fee").
// Immutable once an assessment references it.
type Fee struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"fee_name" gorm:"uniqueIndex;not null" validate:"required"`
	Description string    `json:"fee_description,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// GradeLevel is a year level (Grade 7 .. Grade 12).
type GradeLevel struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"grade_level_name" gorm:"uniqueIndex;not null" validate:"required"`
}

// Strand is a senior-high academic strand (STEM, ABM, ...).
type Strand struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"strand_name" gorm:"uniqueIndex;not null" validate:"required"`
}

// Section is a class section within a grade level.
type Section struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"section_name" gorm:"not null" validate:"required"`
}

// GradeLevelFee prices a Fee for a grade level, optionally narrowed to a
// strand. For senior-high levels a row with a strand overrides the
// null-strand row for the same fee; the null-strand row only applies when no
// strand-specific override exists.
type GradeLevelFee struct {
	ID           int             `json:"id" gorm:"primaryKey;autoIncrement"`
	GradeLevelID int             `json:"grade_level_id" gorm:"not null;index" validate:"required"`
	StrandID     *int            `json:"strand_id,omitempty" gorm:"index"`
	FeeID        int             `json:"fee_id" gorm:"not null;index" validate:"required"`
	Amount       decimal.Decimal `json:"amount" gorm:"not null;type:decimal(10,2)"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`

	FeeName    string `json:"fee_name,omitempty" gorm:"-"`
	GradeLevel string `json:"grade_level_name,omitempty" gorm:"-"`
	StrandName string `json:"strand_name,omitempty" gorm:"-"`
}
