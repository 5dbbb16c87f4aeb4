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

type mockStudentRepo struct {
	students  map[int64]models.Student
	courses   map[int64][]models.CourseDetail
	deleted   []int64
	nextID    int64
	listTotal int
	err       error
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, m.listTotal, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[int64]models.Student)
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.students, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStudentRepo) CoursesFor(ctx context.Context, studentID int64) ([]models.CourseDetail, error) {
	return m.courses[studentID], nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil)

	student, err := svc.Create(context.Background(), StudentRequest{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Age:              21,
		DegreeProgram:    "Mathematics",
		CompletedCredits: 60,
		GPA:              4.0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, 4.0, student.GPA)
}

func TestStudentServiceCreateRejectsGPAAboveScale(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Create(context.Background(), StudentRequest{
		FirstName: "Ada", LastName: "Lovelace", Age: 21, GPA: 4.5,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.students)
}

func TestStudentServiceCreateRejectsNonPositiveAge(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Create(context.Background(), StudentRequest{
		FirstName: "Ada", LastName: "Lovelace", Age: 0,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentServiceGetNotFound(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, FirstName: "Ada", LastName: "Lovelace", Age: 21, GPA: 3.5},
	}}
	svc := NewStudentService(repo, nil, nil)

	student, err := svc.Update(context.Background(), 1, StudentRequest{
		FirstName: "Ada", LastName: "King", Age: 22, CompletedCredits: 75, GPA: 3.8,
	})
	require.NoError(t, err)
	assert.Equal(t, "King", student.LastName)
	assert.Equal(t, 75, repo.students[1].CompletedCredits)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, FirstName: "Ada", LastName: "Lovelace", Age: 21},
	}}
	svc := NewStudentService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentServiceCourses(t *testing.T) {
	repo := &mockStudentRepo{
		students: map[int64]models.Student{1: {ID: 1, FirstName: "Ada", LastName: "Lovelace", Age: 21}},
		courses: map[int64][]models.CourseDetail{
			1: {{Course: models.Course{ID: 3, Name: "Linear Algebra"}}},
		},
	}
	svc := NewStudentService(repo, nil, nil)

	courses, err := svc.Courses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Linear Algebra", courses[0].Name)
}

func TestStudentServiceListPagination(t *testing.T) {
	repo := &mockStudentRepo{
		students:  map[int64]models.Student{1: {ID: 1}},
		listTotal: 120,
	}
	svc := NewStudentService(repo, nil, nil)

	_, pagination, err := svc.List(context.Background(), models.StudentFilter{Page: 3, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, 3, pagination.Page)
	assert.Equal(t, 25, pagination.PageSize)
	assert.Equal(t, 120, pagination.TotalCount)
}
