package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edumatrix/edumatrix-api/internal/models"
)

// StatsRepository aggregates registry-wide counts.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Collect gathers record counts and the average GPA in one round trip.
func (r *StatsRepository) Collect(ctx context.Context) (*models.RecordStats, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM professors) AS professors,
        (SELECT COUNT(*) FROM courses) AS courses,
        (SELECT COUNT(*) FROM enrollments) AS enrollments,
        COALESCE((SELECT AVG(gpa) FROM students), 0) AS average_gpa`
	var stats models.RecordStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	return &stats, nil
}
