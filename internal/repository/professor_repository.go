package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumatrix/edumatrix-api/internal/models"
)

// ProfessorRepository manages persistence for professor records.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// List returns professors matching the provided filters.
func (r *ProfessorRepository) List(ctx context.Context, filter models.ProfessorFilter) ([]models.Professor, int, error) {
	base := "FROM professors p"
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(p.first_name) LIKE $%d OR LOWER(p.last_name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("p.department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"last_name":  "p.last_name",
		"department": "p.department",
		"created_at": "p.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "p.id"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT p.id, p.first_name, p.last_name, p.department, p.academic_achievement, p.created_at, p.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var professors []models.Professor
	if err := r.db.SelectContext(ctx, &professors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list professors: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count professors: %w", err)
	}
	return professors, total, nil
}

// FindByID fetches a professor by ID.
func (r *ProfessorRepository) FindByID(ctx context.Context, id int64) (*models.Professor, error) {
	const query = `SELECT id, first_name, last_name, department, academic_achievement, created_at, updated_at
        FROM professors WHERE id = $1`
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, query, id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// Create inserts a new professor record and fills in the generated ID.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	now := time.Now().UTC()
	professor.CreatedAt = now
	professor.UpdatedAt = now
	const query = `INSERT INTO professors (first_name, last_name, department, academic_achievement, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.GetContext(ctx, &professor.ID, query,
		professor.FirstName, professor.LastName, professor.Department,
		professor.AcademicAchievement, professor.CreatedAt, professor.UpdatedAt); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// Update replaces every mutable column of an existing professor.
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	professor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE professors SET first_name = :first_name, last_name = :last_name,
        department = :department, academic_achievement = :academic_achievement, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, professor); err != nil {
		return fmt.Errorf("update professor: %w", err)
	}
	return nil
}

// Delete removes a professor; their courses keep running with the
// professor reference nulled by the storage layer.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM professors WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete professor: %w", err)
	}
	return nil
}

// CoursesFor lists the courses taught by a professor.
func (r *ProfessorRepository) CoursesFor(ctx context.Context, professorID int64) ([]models.Course, error) {
	const query = `SELECT id, name, start_date, end_date, credit_hours, professor_id, created_at, updated_at
        FROM courses WHERE professor_id = $1 ORDER BY id`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, professorID); err != nil {
		return nil, fmt.Errorf("courses for professor: %w", err)
	}
	return courses, nil
}
