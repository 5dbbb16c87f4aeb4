package models

import "time"

// Student represents a learner registered at the university.
type Student struct {
	ID               int64     `db:"id" json:"id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Age              int       `db:"age" json:"age"`
	DegreeProgram    string    `db:"degree_program" json:"degree_program"`
	CompletedCredits int       `db:"completed_credits" json:"completed_credits"`
	GPA              float64   `db:"gpa" json:"gpa"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	Degree    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
