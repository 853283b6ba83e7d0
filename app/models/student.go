package models

import "time"

// Student represents a learner. The ID is the school-issued student number
// (e.g. "2026-00123"), not a surrogate key.
type Student struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(255)" validate:"required"`
	FirstName  string    `json:"first_name" gorm:"not null" validate:"required"`
	MiddleName string    `json:"middle_name,omitempty"`
	LastName   string    `json:"last_name" gorm:"not null" validate:"required"`
	Suffix     string    `json:"suffix,omitempty"`
	Gender     string    `json:"gender,omitempty" gorm:"type:varchar(20)"`
	Address    string    `json:"address,omitempty"`
	ContactNo  string    `json:"contact_no,omitempty" gorm:"type:varchar(30)"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// FullName joins the student's name parts for display.
func (s *Student) FullName() string {
	name := s.FirstName
	if s.MiddleName != "" {
		name += " " + s.MiddleName
	}
	name += " " + s.LastName
	if s.Suffix != "" {
		name += " " + s.Suffix
	}
	return name
}
