package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumatrix/edumatrix-api/internal/models"
	appErrors "github.com/edumatrix/edumatrix-api/pkg/errors"
)

type mockProfessorRepo struct {
	professors map[int64]models.Professor
	courses    map[int64][]models.Course
	deleted    []int64
	nextID     int64
	listTotal  int
}

func (m *mockProfessorRepo) List(ctx context.Context, filter models.ProfessorFilter) ([]models.Professor, int, error) {
	out := make([]models.Professor, 0, len(m.professors))
	for _, p := range m.professors {
		out = append(out, p)
	}
	return out, m.listTotal, nil
}

func (m *mockProfessorRepo) FindByID(ctx context.Context, id int64) (*models.Professor, error) {
	if p, ok := m.professors[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockProfessorRepo) Create(ctx context.Context, professor *models.Professor) error {
	if m.professors == nil {
		m.professors = make(map[int64]models.Professor)
	}
	m.nextID++
	professor.ID = m.nextID
	m.professors[professor.ID] = *professor
	return nil
}

func (m *mockProfessorRepo) Update(ctx context.Context, professor *models.Professor) error {
	m.professors[professor.ID] = *professor
	return nil
}

func (m *mockProfessorRepo) Delete(ctx context.Context, id int64) error {
	delete(m.professors, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProfessorRepo) CoursesFor(ctx context.Context, professorID int64) ([]models.Course, error) {
	return m.courses[professorID], nil
}

func TestProfessorServiceCreate(t *testing.T) {
	repo := &mockProfessorRepo{}
	svc := NewProfessorService(repo, nil, nil)

	professor, err := svc.Create(context.Background(), ProfessorRequest{
		FirstName:           "Grace",
		LastName:            "Hopper",
		Department:          "Computer Science",
		AcademicAchievement: "PhD",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), professor.ID)
	assert.Equal(t, "Computer Science", professor.Department)
}

func TestProfessorServiceCreateRejectsMissingFirstName(t *testing.T) {
	repo := &mockProfessorRepo{}
	svc := NewProfessorService(repo, nil, nil)

	_, err := svc.Create(context.Background(), ProfessorRequest{LastName: "Hopper"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.professors)
}

func TestProfessorServiceGetNotFound(t *testing.T) {
	repo := &mockProfessorRepo{}
	svc := NewProfessorService(repo, nil, nil)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestProfessorServiceUpdate(t *testing.T) {
	repo := &mockProfessorRepo{professors: map[int64]models.Professor{
		1: {ID: 1, FirstName: "Grace", LastName: "Hopper", Department: "Mathematics"},
	}}
	svc := NewProfessorService(repo, nil, nil)

	professor, err := svc.Update(context.Background(), 1, ProfessorRequest{
		FirstName: "Grace", LastName: "Hopper", Department: "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", professor.Department)
	assert.Equal(t, "Computer Science", repo.professors[1].Department)
}

func TestProfessorServiceDelete(t *testing.T) {
	repo := &mockProfessorRepo{professors: map[int64]models.Professor{
		1: {ID: 1, FirstName: "Grace", LastName: "Hopper"},
	}}
	svc := NewProfessorService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestProfessorServiceCourses(t *testing.T) {
	repo := &mockProfessorRepo{
		professors: map[int64]models.Professor{2: {ID: 2, FirstName: "Grace", LastName: "Hopper"}},
		courses: map[int64][]models.Course{
			2: {{ID: 3, Name: "Compiler Construction"}},
		},
	}
	svc := NewProfessorService(repo, nil, nil)

	courses, err := svc.Courses(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Compiler Construction", courses[0].Name)
}

func TestProfessorServiceCoursesNotFound(t *testing.T) {
	repo := &mockProfessorRepo{}
	svc := NewProfessorService(repo, nil, nil)

	_, err := svc.Courses(context.Background(), 99)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestProfessorServiceListPagination(t *testing.T) {
	repo := &mockProfessorRepo{
		professors: map[int64]models.Professor{1: {ID: 1}},
		listTotal:  80,
	}
	svc := NewProfessorService(repo, nil, nil)

	_, pagination, err := svc.List(context.Background(), models.ProfessorFilter{Page: 2, PageSize: 40})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 40, pagination.PageSize)
	assert.Equal(t, 80, pagination.TotalCount)
}
