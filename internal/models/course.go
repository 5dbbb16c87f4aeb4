package models

import "time"

// Course represents a taught course. ProfessorID is nullable; a course may
// exist before an instructor is assigned.
type Course struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	CreditHours int       `db:"credit_hours" json:"credit_hours"`
	ProfessorID *int64    `db:"professor_id" json:"professor_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CourseDetail contains course information with the joined professor name.
// ProfessorName is empty when no professor is assigned.
type CourseDetail struct {
	Course
	ProfessorName *string `db:"professor_name" json:"professor_name,omitempty"`
}

// CourseFilter encapsulates search parameters for listing courses.
type CourseFilter struct {
	Search      string
	ProfessorID int64
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
