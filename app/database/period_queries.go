package database

import (
	"database/sql"
)

// Academic year and semester maintenance. Activation is transactional:
// deactivate everything, then activate the target, so there is never more or
// less than one active row.

func ListAcademicYears(db *sql.DB) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, academic_year, start_month, status, created_at FROM academic_years ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []map[string]interface{}
	for rows.Next() {
		var id int
		var name, startMonth string
		var status bool
		var createdAt sql.NullTime
		if err := rows.Scan(&id, &name, &startMonth, &status, &createdAt); err != nil {
			return nil, err
		}
		years = append(years, map[string]interface{}{
			"id":            id,
			"academic_year": name,
			"start_month":   startMonth,
			"status":        status,
			"created_at":    createdAt.Time,
		})
	}
	return years, rows.Err()
}

func CreateAcademicYear(db *sql.DB, name, startMonth string) (int, error) {
	var id int
	err := db.QueryRow(`INSERT INTO academic_years (academic_year, start_month) VALUES ($1, $2) RETURNING id`,
		name, startMonth).Scan(&id)
	return id, err
}

func ActivateAcademicYear(db *sql.DB, id int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE academic_years SET status = false WHERE status = true`); err != nil {
		return err
	}
	result, err := tx.Exec(`UPDATE academic_years SET status = true WHERE id = $1`, id)
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
	return tx.Commit()
}

func ListSemesters(db *sql.DB) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, semester_name, status, created_at FROM semesters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []map[string]interface{}
	for rows.Next() {
		var id int
		var name string
		var status bool
		var createdAt sql.NullTime
		if err := rows.Scan(&id, &name, &status, &createdAt); err != nil {
			return nil, err
		}
		semesters = append(semesters, map[string]interface{}{
			"id":            id,
			"semester_name": name,
			"status":        status,
			"created_at":    createdAt.Time,
		})
	}
	return semesters, rows.Err()
}

func CreateSemester(db *sql.DB, name string) (int, error) {
	var id int
	err := db.QueryRow(`INSERT INTO semesters (semester_name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

func ActivateSemester(db *sql.DB, id int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE semesters SET status = false WHERE status = true`); err != nil {
		return err
	}
	result, err := tx.Exec(`UPDATE semesters SET status = true WHERE id = $1`, id)
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
	return tx.Commit()
}
