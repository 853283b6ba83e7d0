package models

import (
	"strings"
	"time"
)

// AcademicYear represents one school year. Exactly one row has status = true
// at any time; that row is the active year.
type AcademicYear struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"academic_year" gorm:"uniqueIndex;not null" validate:"required"`
	StartMonth string    `json:"start_month" gorm:"not null;default:'June'"`
	Status     bool      `json:"status" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Semester represents a half of the academic year. Exactly one row has
// status = true at any time.
type Semester struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"semester_name" gorm:"not null" validate:"required"`
	Status    bool      `json:"status" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// CurrentPeriod is the active academic year and semester, resolved once per
// request and passed explicitly into the resolver/allocator so a mid-request
// activation flip cannot split a computation across two periods.
type CurrentPeriod struct {
	AcademicYear *AcademicYear
	Semester     *Semester
}

var allMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DefaultStartMonth is used when an academic year has no usable start month.
const DefaultStartMonth = "June"

// SchoolYearMonths returns the 10 consecutive month names of a school year
// beginning at startMonth. An unknown start month falls back to June.
func SchoolYearMonths(startMonth string) []string {
	normalized := startMonth
	if len(startMonth) > 0 {
		normalized = strings.ToUpper(startMonth[:1]) + strings.ToLower(startMonth[1:])
	}

	start := -1
	for i, m := range allMonths {
		if m == normalized {
			start = i
			break
		}
	}
	if start == -1 {
		start = 5 // June
	}

	months := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		months = append(months, allMonths[(start+i)%12])
	}
	return months
}

// Months returns the school-year month buckets of the active year.
func (p CurrentPeriod) Months() []string {
	if p.AcademicYear == nil || p.AcademicYear.StartMonth == "" {
		return SchoolYearMonths(DefaultStartMonth)
	}
	return SchoolYearMonths(p.AcademicYear.StartMonth)
}
