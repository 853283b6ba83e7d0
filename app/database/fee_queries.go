package database

import (
	"database/sql"

	"github.com/dhiee1598/vdps-sfrms/app/models"
	"github.com/lib/pq"
)

func GetFees(db *sql.DB) ([]*models.Fee, error) {
	rows, err := db.Query(`SELECT id, fee_name, fee_description, created_at FROM fees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		fee := &models.Fee{}
		var description sql.NullString
		if err := rows.Scan(&fee.ID, &fee.Name, &description, &fee.CreatedAt); err != nil {
			return nil, err
		}
		fee.Description = description.String
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

func CreateFee(db *sql.DB, fee *models.Fee) error {
	query := `INSERT INTO fees (fee_name, fee_description) VALUES ($1, $2) RETURNING id, created_at`
	return db.QueryRow(query, fee.Name, nullable(fee.Description)).Scan(&fee.ID, &fee.CreatedAt)
}

func UpdateFee(db *sql.DB, fee *models.Fee) error {
	result, err := db.Exec(`UPDATE fees SET fee_name = $1, fee_description = $2 WHERE id = $3`,
		fee.Name, nullable(fee.Description), fee.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func CreateGradeLevelFee(db *sql.DB, glf *models.GradeLevelFee) error {
	query := `INSERT INTO grade_level_fees (grade_level_id, strand_id, fee_id, amount)
			  VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return db.QueryRow(query, glf.GradeLevelID, glf.StrandID, glf.FeeID, glf.Amount).
		Scan(&glf.ID, &glf.CreatedAt)
}

func UpdateGradeLevelFee(db *sql.DB, glf *models.GradeLevelFee) error {
	result, err := db.Exec(`UPDATE grade_level_fees SET grade_level_id = $1, strand_id = $2, fee_id = $3, amount = $4 WHERE id = $5`,
		glf.GradeLevelID, glf.StrandID, glf.FeeID, glf.Amount, glf.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListGradeLevelFees returns all priced rows with their fee, grade level and
// strand names joined in.
func ListGradeLevelFees(db *sql.DB) ([]*models.GradeLevelFee, error) {
	query := `SELECT glf.id, glf.grade_level_id, glf.strand_id, glf.fee_id, glf.amount, glf.created_at,
					 f.fee_name, g.grade_level_name, s.strand_name
			  FROM grade_level_fees glf
			  JOIN fees f ON f.id = glf.fee_id
			  JOIN grade_levels g ON g.id = glf.grade_level_id
			  LEFT JOIN strands s ON s.id = glf.strand_id
			  ORDER BY g.id, f.id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGradeLevelFees(rows)
}

// GetApplicableGradeLevelFees resolves the fee lines for a grade level and
// optional strand. A strand-specific row overrides the null-strand row for
// the same fee; the null-strand row applies only when no override exists.
func GetApplicableGradeLevelFees(db *sql.DB, gradeLevelID int, strandID *int) ([]*models.GradeLevelFee, error) {
	query := `SELECT glf.id, glf.grade_level_id, glf.strand_id, glf.fee_id, glf.amount, glf.created_at,
					 f.fee_name, g.grade_level_name, s.strand_name
			  FROM grade_level_fees glf
			  JOIN fees f ON f.id = glf.fee_id
			  JOIN grade_levels g ON g.id = glf.grade_level_id
			  LEFT JOIN strands s ON s.id = glf.strand_id
			  WHERE glf.grade_level_id = $1 AND (glf.strand_id = $2 OR glf.strand_id IS NULL)
			  ORDER BY f.id`

	rows, err := db.Query(query, gradeLevelID, strandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines, err := scanGradeLevelFees(rows)
	if err != nil {
		return nil, err
	}

	// Drop null-strand rows shadowed by a strand-specific override.
	overridden := make(map[int]bool)
	for _, line := range lines {
		if line.StrandID != nil {
			overridden[line.FeeID] = true
		}
	}
	resolved := lines[:0]
	for _, line := range lines {
		if line.StrandID == nil && overridden[line.FeeID] {
			continue
		}
		resolved = append(resolved, line)
	}
	return resolved, nil
}

// GetGradeLevelFeesByIDs fetches the selected priced rows. Clients send
// grade-level-fee ids; each row carries the parent generic fee id the
// assessment actually stores.
func GetGradeLevelFeesByIDs(db *sql.DB, ids []int) ([]*models.GradeLevelFee, error) {
	query := `SELECT glf.id, glf.grade_level_id, glf.strand_id, glf.fee_id, glf.amount, glf.created_at,
					 f.fee_name, g.grade_level_name, s.strand_name
			  FROM grade_level_fees glf
			  JOIN fees f ON f.id = glf.fee_id
			  JOIN grade_levels g ON g.id = glf.grade_level_id
			  LEFT JOIN strands s ON s.id = glf.strand_id
			  WHERE glf.id = ANY($1)`

	rows, err := db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGradeLevelFees(rows)
}

func scanGradeLevelFees(rows *sql.Rows) ([]*models.GradeLevelFee, error) {
	var lines []*models.GradeLevelFee
	for rows.Next() {
		line := &models.GradeLevelFee{}
		var strandName sql.NullString
		if err := rows.Scan(
			&line.ID, &line.GradeLevelID, &line.StrandID, &line.FeeID, &line.Amount, &line.CreatedAt,
			&line.FeeName, &line.GradeLevel, &strandName,
		); err != nil {
			return nil, err
		}
		line.StrandName = strandName.String
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func GetGradeLevels(db *sql.DB) ([]*models.GradeLevel, error) {
	rows, err := db.Query(`SELECT id, grade_level_name FROM grade_levels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*models.GradeLevel
	for rows.Next() {
		level := &models.GradeLevel{}
		if err := rows.Scan(&level.ID, &level.Name); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

func GetStrands(db *sql.DB) ([]*models.Strand, error) {
	rows, err := db.Query(`SELECT id, strand_name FROM strands ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strands []*models.Strand
	for rows.Next() {
		strand := &models.Strand{}
		if err := rows.Scan(&strand.ID, &strand.Name); err != nil {
			return nil, err
		}
		strands = append(strands, strand)
	}
	return strands, rows.Err()
}
