package models

import "time"

// Enrollment links a student to a course, optionally carrying a grade.
// The (student_id, course_id) pair is unique.
type Enrollment struct {
	StudentID  int64     `db:"student_id" json:"student_id"`
	CourseID   int64     `db:"course_id" json:"course_id"`
	Grade      *string   `db:"grade" json:"grade,omitempty"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// EnrollmentDetail contains an enrollment with joined display names.
type EnrollmentDetail struct {
	Enrollment
	StudentName string `db:"student_name" json:"student_name"`
	CourseName  string `db:"course_name" json:"course_name"`
}

// CourseRoster is one student row in a course's enrollment listing.
type CourseRoster struct {
	StudentID int64   `db:"student_id" json:"student_id"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Grade     *string `db:"grade" json:"grade,omitempty"`
}
