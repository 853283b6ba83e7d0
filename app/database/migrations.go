package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet. Statements are
// idempotent so the server can run them on every boot.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'cashier',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS academic_years (
			id SERIAL PRIMARY KEY,
			academic_year VARCHAR(50) UNIQUE NOT NULL,
			start_month VARCHAR(20) NOT NULL DEFAULT 'June',
			status BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS semesters (
			id SERIAL PRIMARY KEY,
			semester_name VARCHAR(50) NOT NULL,
			status BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS grade_levels (
			id SERIAL PRIMARY KEY,
			grade_level_name VARCHAR(50) UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS strands (
			id SERIAL PRIMARY KEY,
			strand_name VARCHAR(100) UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			id SERIAL PRIMARY KEY,
			section_name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id VARCHAR(255) PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			middle_name VARCHAR(100),
			last_name VARCHAR(100) NOT NULL,
			suffix VARCHAR(20),
			gender VARCHAR(20),
			address TEXT,
			contact_no VARCHAR(30),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS fees (
			id SERIAL PRIMARY KEY,
			fee_name VARCHAR(100) UNIQUE NOT NULL,
			fee_description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS grade_level_fees (
			id SERIAL PRIMARY KEY,
			grade_level_id INT NOT NULL REFERENCES grade_levels(id),
			strand_id INT REFERENCES strands(id),
			fee_id INT NOT NULL REFERENCES fees(id),
			amount DECIMAL(10,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id SERIAL PRIMARY KEY,
			student_id VARCHAR(255) NOT NULL REFERENCES students(id),
			grade_level_id INT NOT NULL REFERENCES grade_levels(id),
			strand_id INT REFERENCES strands(id),
			section_id INT REFERENCES sections(id),
			academic_year_id INT NOT NULL REFERENCES academic_years(id),
			semester_id INT REFERENCES semesters(id),
			status VARCHAR(20) NOT NULL DEFAULT 'enrolled',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, academic_year_id)
		)`,
		`CREATE TABLE IF NOT EXISTS assessments (
			id SERIAL PRIMARY KEY,
			enrollment_id INT NOT NULL REFERENCES enrollments(id),
			student_id VARCHAR(255) NOT NULL REFERENCES students(id),
			total_amount_due DECIMAL(10,2) NOT NULL,
			total_paid DECIMAL(10,2) NOT NULL DEFAULT 0,
			is_esc_grant BOOLEAN NOT NULL DEFAULT FALSE,
			is_cash_discount BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (enrollment_id, student_id)
		)`,
		`CREATE TABLE IF NOT EXISTS assessment_fees (
			assessment_id INT NOT NULL REFERENCES assessments(id),
			fee_id INT NOT NULL REFERENCES fees(id),
			applied_amount DECIMAL(10,2) NOT NULL,
			PRIMARY KEY (assessment_id, fee_id)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id VARCHAR(36) PRIMARY KEY,
			assessment_id INT NOT NULL REFERENCES assessments(id),
			student_id VARCHAR(255) NOT NULL REFERENCES students(id),
			total_amount DECIMAL(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			date_paid TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
			id SERIAL PRIMARY KEY,
			transaction_id VARCHAR(36) NOT NULL REFERENCES transactions(transaction_id),
			item_type VARCHAR(100) NOT NULL,
			category VARCHAR(20) NOT NULL,
			amount DECIMAL(10,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_assessment ON transactions(assessment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_items_transaction ON transaction_items(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_student ON assessments(student_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
