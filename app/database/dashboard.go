package database

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregate the registrar's overview numbers for the active
// academic year.
type DashboardStats struct {
	EnrolledStudents   int             `json:"enrolled_students"`
	AssessedStudents   int             `json:"assessed_students"`
	ExpectedCollection decimal.Decimal `json:"expected_collection"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func GetDashboardStats(db *sql.DB, academicYearID int) (*DashboardStats, error) {
	stats := &DashboardStats{
		ExpectedCollection: decimal.Zero,
		TotalCollected:     decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}

	err := db.QueryRow(`SELECT COUNT(*) FROM enrollments WHERE academic_year_id = $1`, academicYearID).
		Scan(&stats.EnrolledStudents)
	if err != nil {
		return nil, err
	}

	query := `SELECT COUNT(*),
				COALESCE(SUM(a.total_amount_due), 0),
				COALESCE(SUM(a.total_paid), 0),
				COALESCE(SUM(GREATEST(a.total_amount_due - a.total_paid, 0)), 0)
			  FROM assessments a
			  JOIN enrollments e ON e.id = a.enrollment_id
			  WHERE e.academic_year_id = $1`
	err = db.QueryRow(query, academicYearID).Scan(
		&stats.AssessedStudents, &stats.ExpectedCollection,
		&stats.TotalCollected, &stats.OutstandingBalance,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
