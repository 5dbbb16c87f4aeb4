package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumatrix/edumatrix-api/internal/models"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Find returns the enrollment linking a student to a course.
func (r *EnrollmentRepository) Find(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	const query = `SELECT student_id, course_id, grade, enrolled_at FROM enrollments
        WHERE student_id = $1 AND course_id = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, courseID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Exists reports whether the student is already enrolled in the course.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create records an enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollments (student_id, course_id, grade, enrolled_at)
        VALUES (:student_id, :course_id, :grade, :enrolled_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Delete removes the enrollment linking a student to a course.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) error {
	const query = `DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2`
	if _, err := r.db.ExecContext(ctx, query, studentID, courseID); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

// SetGrade assigns or clears the grade on an enrollment.
func (r *EnrollmentRepository) SetGrade(ctx context.Context, studentID, courseID int64, grade *string) error {
	const query = `UPDATE enrollments SET grade = $3 WHERE student_id = $1 AND course_id = $2`
	if _, err := r.db.ExecContext(ctx, query, studentID, courseID, grade); err != nil {
		return fmt.Errorf("set grade: %w", err)
	}
	return nil
}

// ListForStudent returns the student's enrollments with joined names.
func (r *EnrollmentRepository) ListForStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.student_id, e.course_id, e.grade, e.enrolled_at,
        s.first_name || ' ' || s.last_name AS student_name, c.name AS course_name
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id = $1
        ORDER BY e.enrolled_at`
	var details []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &details, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollments for student: %w", err)
	}
	return details, nil
}

// ListForCourse returns the course's enrollments with joined names.
func (r *EnrollmentRepository) ListForCourse(ctx context.Context, courseID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.student_id, e.course_id, e.grade, e.enrolled_at,
        s.first_name || ' ' || s.last_name AS student_name, c.name AS course_name
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN courses c ON c.id = e.course_id
        WHERE e.course_id = $1
        ORDER BY e.enrolled_at`
	var details []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &details, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrollments for course: %w", err)
	}
	return details, nil
}
