package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dhiee1598/vdps-sfrms/app/models"
	"golang.org/x/crypto/bcrypt"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	_, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashedPassword, userID)
	return err
}

// CreateUser inserts a staff account, hashing the plaintext password.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), 14)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (email, password, first_name, last_name, role)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	return db.QueryRow(query, user.Email, string(hashed), user.FirstName, user.LastName, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetCurrentPeriod resolves the active academic year and semester. Callers
// resolve this once per request and pass the value down; nothing re-queries
// it mid-computation.
func GetCurrentPeriod(db *sql.DB) (models.CurrentPeriod, error) {
	period := models.CurrentPeriod{}

	year := &models.AcademicYear{}
	err := db.QueryRow(`SELECT id, academic_year, start_month, status, created_at
						FROM academic_years WHERE status = true LIMIT 1`).
		Scan(&year.ID, &year.Name, &year.StartMonth, &year.Status, &year.CreatedAt)
	if err == nil {
		period.AcademicYear = year
	} else if err != sql.ErrNoRows {
		return period, err
	}

	sem := &models.Semester{}
	err = db.QueryRow(`SELECT id, semester_name, status, created_at
					   FROM semesters WHERE status = true LIMIT 1`).
		Scan(&sem.ID, &sem.Name, &sem.Status, &sem.CreatedAt)
	if err == nil {
		period.Semester = sem
	} else if err != sql.ErrNoRows {
		return period, err
	}

	return period, nil
}

// GetEnrollmentByID fetches an enrollment with its grade level, strand,
// section and academic year names joined in.
func GetEnrollmentByID(db *sql.DB, enrollmentID int) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	var strandName, sectionName sql.NullString
	query := `SELECT e.id, e.student_id, e.grade_level_id, e.strand_id, e.section_id,
					 e.academic_year_id, e.semester_id, e.status, e.created_at,
					 g.grade_level_name, s.strand_name, sec.section_name, ay.academic_year
			  FROM enrollments e
			  JOIN grade_levels g ON g.id = e.grade_level_id
			  LEFT JOIN strands s ON s.id = e.strand_id
			  LEFT JOIN sections sec ON sec.id = e.section_id
			  JOIN academic_years ay ON ay.id = e.academic_year_id
			  WHERE e.id = $1`

	err := db.QueryRow(query, enrollmentID).Scan(
		&e.ID, &e.StudentID, &e.GradeLevelID, &e.StrandID, &e.SectionID,
		&e.AcademicYearID, &e.SemesterID, &e.Status, &e.CreatedAt,
		&e.GradeLevelName, &strandName, &sectionName, &e.AcademicYear,
	)
	if err != nil {
		return nil, err
	}
	if strandName.Valid {
		e.StrandName = strandName.String
	}
	if sectionName.Valid {
		e.SectionName = sectionName.String
	}
	return e, nil
}

// CreateEnrollment inserts an enrollment. The (student, academic year)
// uniqueness is enforced by the schema; duplicates surface as pq errors the
// caller maps to a conflict.
func CreateEnrollment(db *sql.DB, e *models.Enrollment) error {
	query := `INSERT INTO enrollments (student_id, grade_level_id, strand_id, section_id, academic_year_id, semester_id, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	return db.QueryRow(query, e.StudentID, e.GradeLevelID, e.StrandID, e.SectionID,
		e.AcademicYearID, e.SemesterID, e.Status).Scan(&e.ID, &e.CreatedAt)
}

// EnrollmentExists reports whether a student already has an enrollment for
// the given academic year.
func EnrollmentExists(db *sql.DB, studentID string, academicYearID int) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM enrollments WHERE student_id = $1 AND academic_year_id = $2`,
		studentID, academicYearID).Scan(&count)
	return count > 0, err
}

// ListEnrollments returns enrollments for an academic year, optionally
// filtered by a student name/id search.
func ListEnrollments(db *sql.DB, academicYearID int, search string) ([]*models.Enrollment, error) {
	query := `SELECT e.id, e.student_id, e.grade_level_id, e.strand_id, e.section_id,
					 e.academic_year_id, e.semester_id, e.status, e.created_at,
					 g.grade_level_name, s.strand_name, sec.section_name, ay.academic_year
			  FROM enrollments e
			  JOIN students st ON st.id = e.student_id
			  JOIN grade_levels g ON g.id = e.grade_level_id
			  LEFT JOIN strands s ON s.id = e.strand_id
			  LEFT JOIN sections sec ON sec.id = e.section_id
			  JOIN academic_years ay ON ay.id = e.academic_year_id
			  WHERE e.academic_year_id = $1`

	args := []interface{}{academicYearID}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query += fmt.Sprintf(` AND (LOWER(st.id) LIKE $%d OR LOWER(st.first_name) LIKE $%d OR LOWER(st.last_name) LIKE $%d)`,
			len(args)+1, len(args)+2, len(args)+3)
		args = append(args, pattern, pattern, pattern)
	}
	query += " ORDER BY e.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{}
		var strandName, sectionName sql.NullString
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.GradeLevelID, &e.StrandID, &e.SectionID,
			&e.AcademicYearID, &e.SemesterID, &e.Status, &e.CreatedAt,
			&e.GradeLevelName, &strandName, &sectionName, &e.AcademicYear,
		); err != nil {
			return nil, err
		}
		if strandName.Valid {
			e.StrandName = strandName.String
		}
		if sectionName.Valid {
			e.SectionName = sectionName.String
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// GetStudentByID fetches one student record.
func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	s := &models.Student{}
	var middle, suffix, gender, address, contact sql.NullString
	query := `SELECT id, first_name, middle_name, last_name, suffix, gender, address, contact_no, created_at
			  FROM students WHERE id = $1`
	err := db.QueryRow(query, studentID).Scan(
		&s.ID, &s.FirstName, &middle, &s.LastName, &suffix, &gender, &address, &contact, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.MiddleName = middle.String
	s.Suffix = suffix.String
	s.Gender = gender.String
	s.Address = address.String
	s.ContactNo = contact.String
	return s, nil
}

// CreateStudent inserts a student record.
func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (id, first_name, middle_name, last_name, suffix, gender, address, contact_no)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	return db.QueryRow(query, s.ID, s.FirstName, nullable(s.MiddleName), s.LastName,
		nullable(s.Suffix), nullable(s.Gender), nullable(s.Address), nullable(s.ContactNo)).Scan(&s.CreatedAt)
}

// SearchStudents returns students matching an id or name search.
func SearchStudents(db *sql.DB, search string, limit, offset int) ([]*models.Student, error) {
	query := `SELECT id, first_name, middle_name, last_name, suffix, gender, address, contact_no, created_at
			  FROM students`
	args := []interface{}{}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query += ` WHERE LOWER(id) LIKE $1 OR LOWER(first_name) LIKE $2 OR LOWER(last_name) LIKE $3`
		args = append(args, pattern, pattern, pattern)
	}
	query += fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{}
		var middle, suffix, gender, address, contact sql.NullString
		if err := rows.Scan(&s.ID, &s.FirstName, &middle, &s.LastName, &suffix, &gender, &address, &contact, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.MiddleName = middle.String
		s.Suffix = suffix.String
		s.Gender = gender.String
		s.Address = address.String
		s.ContactNo = contact.String
		students = append(students, s)
	}
	return students, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
