package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/lib/pq"
)

// AssessmentExists reports whether the (enrollment, student) pair is already
// assessed.
func AssessmentExists(db *sql.DB, enrollmentID int, studentID string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM assessments WHERE enrollment_id = $1 AND student_id = $2`,
		enrollmentID, studentID).Scan(&count)
	return count > 0, err
}

// GetLatestAssessmentForStudent returns the student's most recent assessment
// or nil when none exists. Used for the carry-forward policy.
func GetLatestAssessmentForStudent(db *sql.DB, studentID string) (*models.Assessment, error) {
	a := &models.Assessment{}
	query := `SELECT id, enrollment_id, student_id, total_amount_due, total_paid, is_esc_grant, is_cash_discount, created_at
			  FROM assessments WHERE student_id = $1 ORDER BY id DESC LIMIT 1`
	err := db.QueryRow(query, studentID).Scan(
		&a.ID, &a.EnrollmentID, &a.StudentID, &a.TotalAmountDue, &a.TotalPaid,
		&a.IsESCGrant, &a.IsCashDiscount, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAssessmentByID fetches one assessment.
func GetAssessmentByID(db *sql.DB, assessmentID int) (*models.Assessment, error) {
	a := &models.Assessment{}
	query := `SELECT id, enrollment_id, student_id, total_amount_due, total_paid, is_esc_grant, is_cash_discount, created_at
			  FROM assessments WHERE id = $1`
	err := db.QueryRow(query, assessmentID).Scan(
		&a.ID, &a.EnrollmentID, &a.StudentID, &a.TotalAmountDue, &a.TotalPaid,
		&a.IsESCGrant, &a.IsCashDiscount, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAssessment inserts the assessment and its fee lines as one unit.
func CreateAssessment(db *sql.DB, a *models.Assessment, lines []*models.AssessmentFee) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO assessments (enrollment_id, student_id, total_amount_due, total_paid, is_esc_grant, is_cash_discount)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err = tx.QueryRow(query, a.EnrollmentID, a.StudentID, a.TotalAmountDue, a.TotalPaid,
		a.IsESCGrant, a.IsCashDiscount).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %v", err)
	}

	for _, line := range lines {
		_, err = tx.Exec(`INSERT INTO assessment_fees (assessment_id, fee_id, applied_amount) VALUES ($1, $2, $3)`,
			a.ID, line.FeeID, line.AppliedAmount)
		if err != nil {
			return fmt.Errorf("failed to insert assessment fee: %v", err)
		}
	}

	return tx.Commit()
}

// AssessmentDetail is one row of the assessment projection: the assessment
// with its student, enrollment, fee lines and full transaction history.
type AssessmentDetail struct {
	models.Assessment
	Student      *models.Student         `json:"student,omitempty"`
	Enrollment   *models.Enrollment      `json:"enrollment,omitempty"`
	Fees         []*models.AssessmentFee `json:"fees"`
	Transactions []*models.Transaction   `json:"transactions"`
}

// AssessmentFilters narrow the assessment projection.
type AssessmentFilters struct {
	Search         string
	AcademicYearID int // 0 = all years
	Page           int
	PageSize       int
}

// ListAssessments pages through assessments with everything the allocator
// projection needs: student, enrollment, fee lines and transactions+items.
func ListAssessments(db *sql.DB, filters AssessmentFilters) ([]*AssessmentDetail, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filters.AcademicYearID != 0 {
		args = append(args, filters.AcademicYearID)
		conditions = append(conditions, fmt.Sprintf("e.academic_year_id = $%d", len(args)))
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		args = append(args, pattern)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(st.id) LIKE $%d OR LOWER(st.first_name) LIKE $%d OR LOWER(st.last_name) LIKE $%d)", n, n, n))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(DISTINCT a.id)
		FROM assessments a
		JOIN students st ON st.id = a.student_id
		JOIN enrollments e ON e.id = a.enrollment_id
		WHERE %s`, where)
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)
	pageQuery := fmt.Sprintf(`SELECT a.id, a.enrollment_id, a.student_id, a.total_amount_due, a.total_paid,
			a.is_esc_grant, a.is_cash_discount, a.created_at,
			st.id, st.first_name, st.middle_name, st.last_name, st.suffix,
			e.id, e.student_id, e.grade_level_id, e.strand_id, e.section_id, e.academic_year_id, e.semester_id, e.status, e.created_at,
			g.grade_level_name, s.strand_name, sec.section_name, ay.academic_year
		FROM assessments a
		JOIN students st ON st.id = a.student_id
		JOIN enrollments e ON e.id = a.enrollment_id
		JOIN grade_levels g ON g.id = e.grade_level_id
		LEFT JOIN strands s ON s.id = e.strand_id
		LEFT JOIN sections sec ON sec.id = e.section_id
		JOIN academic_years ay ON ay.id = e.academic_year_id
		WHERE %s
		ORDER BY a.id DESC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := db.Query(pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var details []*AssessmentDetail
	var ids []int
	byID := make(map[int]*AssessmentDetail)
	for rows.Next() {
		d := &AssessmentDetail{
			Student:      &models.Student{},
			Enrollment:   &models.Enrollment{},
			Fees:         []*models.AssessmentFee{},
			Transactions: []*models.Transaction{},
		}
		var middle, suffix, strandName, sectionName sql.NullString
		if err := rows.Scan(
			&d.ID, &d.EnrollmentID, &d.StudentID, &d.TotalAmountDue, &d.TotalPaid,
			&d.IsESCGrant, &d.IsCashDiscount, &d.CreatedAt,
			&d.Student.ID, &d.Student.FirstName, &middle, &d.Student.LastName, &suffix,
			&d.Enrollment.ID, &d.Enrollment.StudentID, &d.Enrollment.GradeLevelID, &d.Enrollment.StrandID,
			&d.Enrollment.SectionID, &d.Enrollment.AcademicYearID, &d.Enrollment.SemesterID,
			&d.Enrollment.Status, &d.Enrollment.CreatedAt,
			&d.Enrollment.GradeLevelName, &strandName, &sectionName, &d.Enrollment.AcademicYear,
		); err != nil {
			return nil, 0, err
		}
		d.Student.MiddleName = middle.String
		d.Student.Suffix = suffix.String
		d.Enrollment.StrandName = strandName.String
		d.Enrollment.SectionName = sectionName.String
		details = append(details, d)
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return details, total, nil
	}

	if err := attachAssessmentFees(db, ids, byID); err != nil {
		return nil, 0, err
	}
	if err := attachTransactions(db, ids, byID); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func attachAssessmentFees(db *sql.DB, ids []int, byID map[int]*AssessmentDetail) error {
	rows, err := db.Query(`SELECT af.assessment_id, af.fee_id, af.applied_amount, f.fee_name, f.fee_description
		FROM assessment_fees af
		JOIN fees f ON f.id = af.fee_id
		WHERE af.assessment_id = ANY($1)
		ORDER BY af.fee_id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		line := &models.AssessmentFee{}
		var description sql.NullString
		if err := rows.Scan(&line.AssessmentID, &line.FeeID, &line.AppliedAmount, &line.FeeName, &description); err != nil {
			return err
		}
		line.FeeDescription = description.String
		if d, ok := byID[line.AssessmentID]; ok {
			d.Fees = append(d.Fees, line)
		}
	}
	return rows.Err()
}

func attachTransactions(db *sql.DB, ids []int, byID map[int]*AssessmentDetail) error {
	rows, err := db.Query(`SELECT t.transaction_id, t.assessment_id, t.student_id, t.total_amount, t.status, t.date_paid, t.created_at,
			ti.id, ti.item_type, ti.category, ti.amount
		FROM transactions t
		LEFT JOIN transaction_items ti ON ti.transaction_id = t.transaction_id
		WHERE t.assessment_id = ANY($1)
		ORDER BY t.created_at, ti.id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	seen := make(map[string]*models.Transaction)
	for rows.Next() {
		txn := &models.Transaction{}
		var itemID sql.NullInt64
		var itemType, category sql.NullString
		var amount sql.NullString
		if err := rows.Scan(
			&txn.TransactionID, &txn.AssessmentID, &txn.StudentID, &txn.TotalAmount,
			&txn.Status, &txn.DatePaid, &txn.CreatedAt,
			&itemID, &itemType, &category, &amount,
		); err != nil {
			return err
		}

		existing, ok := seen[txn.TransactionID]
		if !ok {
			existing = txn
			existing.Items = []*models.TransactionItem{}
			seen[txn.TransactionID] = existing
			if d, found := byID[txn.AssessmentID]; found {
				d.Transactions = append(d.Transactions, existing)
			}
		}

		if itemID.Valid {
			item := &models.TransactionItem{
				ID:            int(itemID.Int64),
				TransactionID: existing.TransactionID,
				ItemType:      itemType.String,
				Category:      models.ItemCategory(category.String),
			}
			if err := item.Amount.Scan(amount.String); err != nil {
				return err
			}
			existing.Items = append(existing.Items, item)
		}
	}
	return rows.Err()
}

// ListAssessmentIDs returns every assessment id; the nightly audit walks
// this list.
func ListAssessmentIDs(db *sql.DB) ([]int, error) {
	rows, err := db.Query(`SELECT id FROM assessments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
