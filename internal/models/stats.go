package models

// RecordStats summarises the size and shape of the registry.
type RecordStats struct {
	Students    int     `db:"students" json:"students"`
	Professors  int     `db:"professors" json:"professors"`
	Courses     int     `db:"courses" json:"courses"`
	Enrollments int     `db:"enrollments" json:"enrollments"`
	AverageGPA  float64 `db:"average_gpa" json:"average_gpa"`
}
