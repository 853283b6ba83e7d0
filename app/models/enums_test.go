package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyItemType(t *testing.T) {
	months := SchoolYearMonths("June")

	tests := []struct {
		name     string
		itemType string
		want     ItemCategory
	}{
		{name: "school year month", itemType: "August", want: CategoryMonth},
		{name: "wrapped month", itemType: "February", want: CategoryMonth},
		{name: "full payment", itemType: "Full Payment", want: CategoryFullPayment},
		{name: "downpayment keyword", itemType: "Downpayment", want: CategoryDownpayment},
		{name: "dp shorthand", itemType: "DP", want: CategoryDownpayment},
		{name: "reservation fee", itemType: "Reservation Fee", want: CategoryReservation},
		{name: "partial payment", itemType: "Partial Payment", want: CategoryTuition},
		{name: "contains tuition", itemType: "Old Tuition Balance", want: CategoryTuition},
		{name: "uniform is sundry", itemType: "School Uniform", want: CategorySundry},
		{name: "id card is sundry", itemType: "ID Card", want: CategorySundry},
		{name: "off-year month is sundry", itemType: "April", want: CategorySundry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyItemType(tt.itemType, months))
		})
	}
}

func TestCountsTowardTuition(t *testing.T) {
	assert.True(t, CategoryMonth.CountsTowardTuition())
	assert.True(t, CategoryDownpayment.CountsTowardTuition())
	assert.True(t, CategoryFullPayment.CountsTowardTuition())
	assert.True(t, CategoryReservation.CountsTowardTuition())
	assert.True(t, CategoryTuition.CountsTowardTuition())
	assert.False(t, CategorySundry.CountsTowardTuition())
	assert.False(t, ItemCategory("").CountsTowardTuition())
}

func TestSchoolYearMonths(t *testing.T) {
	june := SchoolYearMonths("June")
	assert.Len(t, june, 10)
	assert.Equal(t, "June", june[0])
	assert.Equal(t, "December", june[6])
	assert.Equal(t, "March", june[9])

	// wraps past December
	august := SchoolYearMonths("August")
	assert.Equal(t, "August", august[0])
	assert.Equal(t, "May", august[9])

	// case-insensitive input
	assert.Equal(t, june, SchoolYearMonths("JUNE"))

	// unknown start month falls back to June
	assert.Equal(t, june, SchoolYearMonths("Juneteenth"))
	assert.Equal(t, june, SchoolYearMonths(""))
}

func TestCurrentPeriodMonths(t *testing.T) {
	// no active year resolves to the default calendar
	empty := CurrentPeriod{}
	assert.Equal(t, SchoolYearMonths(DefaultStartMonth), empty.Months())

	period := CurrentPeriod{AcademicYear: &AcademicYear{StartMonth: "July"}}
	assert.Equal(t, "July", period.Months()[0])
}

func TestClassifyGradeLevel(t *testing.T) {
	assert.Equal(t, LevelJunior, ClassifyGradeLevel("GRADE 7"))
	assert.Equal(t, LevelJunior, ClassifyGradeLevel("grade 10"))
	assert.Equal(t, LevelSenior, ClassifyGradeLevel("GRADE 11"))
	assert.Equal(t, LevelSenior, ClassifyGradeLevel(" Grade 12 "))
	assert.Equal(t, LevelOther, ClassifyGradeLevel("GRADE 6"))
	assert.Equal(t, LevelOther, ClassifyGradeLevel("KINDER"))
}
