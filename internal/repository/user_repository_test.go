package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumatrix/edumatrix-api/internal/models"
)

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "active", "last_login", "created_at", "updated_at"}).
		AddRow("u-1", "admin@edumatrix.local", "hash", "Administrator", true, nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, email").
		WithArgs("admin@edumatrix.local").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "admin@edumatrix.local")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, user.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{Email: "admin@edumatrix.local", PasswordHash: "hash", FullName: "Administrator", Active: true}
	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepositoryCollect(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStatsRepository(db)

	rows := sqlmock.NewRows([]string{"students", "professors", "courses", "enrollments", "average_gpa"}).
		AddRow(10, 3, 5, 14, 3.21)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Students)
	assert.Equal(t, 14, stats.Enrollments)
	assert.InDelta(t, 3.21, stats.AverageGPA, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
