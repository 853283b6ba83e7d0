package models

import "strings"

// TransactionStatus defines the lifecycle state of a payment transaction.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionPaid    TransactionStatus = "paid"
)

// ItemCategory is the closed classification of a transaction item, assigned
// once when the item is created and stored alongside it. The ledger never
// re-infers categories from free text on read.
type ItemCategory string

const (
	CategoryMonth       ItemCategory = "month"
	CategoryDownpayment ItemCategory = "downpayment"
	CategoryFullPayment ItemCategory = "full_payment"
	CategoryReservation ItemCategory = "reservation"
	CategoryTuition     ItemCategory = "tuition"
	CategorySundry      ItemCategory = "sundry"
)

// CountsTowardTuition reports whether items of this category are summed into
// an assessment's total_paid. Sundry purchases (uniforms, IDs, etc.) are
// excluded from the tuition ledger entirely.
func (c ItemCategory) CountsTowardTuition() bool {
	return c != CategorySundry && c != ""
}

// tuitionKeywords are the item types that count toward tuition without being
// tagged to a specific month. Matching is case-insensitive.
var tuitionKeywords = map[string]ItemCategory{
	"full payment":    CategoryFullPayment,
	"downpayment":     CategoryDownpayment,
	"down payment":    CategoryDownpayment,
	"dp":              CategoryDownpayment,
	"reservation fee": CategoryReservation,
	"rf":              CategoryReservation,
	"partial payment": CategoryTuition,
	"partial":         CategoryTuition,
	"tuition":         CategoryTuition,
	"tuition fee":     CategoryTuition,
	"upon enrollment": CategoryTuition,
}

// ClassifyItemType assigns the category for an item type. An item is
// tuition-bearing when its type is one of the school-year month names, one of
// the known tuition keywords, or contains "tuition"; everything else is a
// sundry item.
func ClassifyItemType(itemType string, months []string) ItemCategory {
	for _, m := range months {
		if itemType == m {
			return CategoryMonth
		}
	}
	if cat, ok := tuitionKeywords[strings.ToLower(strings.TrimSpace(itemType))]; ok {
		return cat
	}
	if strings.Contains(strings.ToLower(itemType), "tuition") {
		return CategoryTuition
	}
	return CategorySundry
}

// GradeLevelClass splits grade levels into the two fee brackets the resolver
// cares about.
type GradeLevelClass string

const (
	LevelJunior GradeLevelClass = "junior_high"
	LevelSenior GradeLevelClass = "senior_high"
	LevelOther  GradeLevelClass = "other"
)

var juniorHighGrades = map[string]bool{
	"GRADE 7":  true,
	"GRADE 8":  true,
	"GRADE 9":  true,
	"GRADE 10": true,
}

var seniorHighGrades = map[string]bool{
	"GRADE 11": true,
	"GRADE 12": true,
}

// ClassifyGradeLevel maps a grade level name to its fee bracket.
func ClassifyGradeLevel(name string) GradeLevelClass {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if juniorHighGrades[upper] {
		return LevelJunior
	}
	if seniorHighGrades[upper] {
		return LevelSenior
	}
	return LevelOther
}
