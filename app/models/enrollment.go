package models

import "time"

// Enrollment registers a student into a grade level, strand and section for
// one academic year. A student has at most one enrollment per academic year;
// rows are immutable after creation except for the status field.
type Enrollment struct {
	ID             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentID      string    `json:"student_id" gorm:"not null;index;type:varchar(255)" validate:"required"`
	GradeLevelID   int       `json:"grade_level_id" gorm:"not null;index" validate:"required"`
	StrandID       *int      `json:"strand_id,omitempty" gorm:"index"`
	SectionID      *int      `json:"section_id,omitempty" gorm:"index"`
	AcademicYearID int       `json:"academic_year_id" gorm:"not null;index" validate:"required"`
	SemesterID     *int      `json:"semester_id,omitempty" gorm:"index"`
	Status         string    `json:"status" gorm:"not null;default:'enrolled';type:varchar(20)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	GradeLevelName string `json:"grade_level_name,omitempty" gorm:"-"`
	StrandName     string `json:"strand_name,omitempty" gorm:"-"`
	SectionName    string `json:"section_name,omitempty" gorm:"-"`
	AcademicYear   string `json:"academic_year,omitempty" gorm:"-"`
}
