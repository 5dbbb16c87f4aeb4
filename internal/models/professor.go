package models

import "time"

// Professor represents a faculty member.
type Professor struct {
	ID                  int64     `db:"id" json:"id"`
	FirstName           string    `db:"first_name" json:"first_name"`
	LastName            string    `db:"last_name" json:"last_name"`
	Department          string    `db:"department" json:"department"`
	AcademicAchievement string    `db:"academic_achievement" json:"academic_achievement"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// ProfessorFilter encapsulates search parameters for listing professors.
type ProfessorFilter struct {
	Search     string
	Department string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
