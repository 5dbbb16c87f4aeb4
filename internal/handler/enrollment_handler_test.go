package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumatrix/edumatrix-api/internal/models"
	"github.com/edumatrix/edumatrix-api/internal/service"
)

type pairKey struct {
	studentID int64
	courseID  int64
}

type fakeEnrollmentRepo struct {
	enrollments map[pairKey]models.Enrollment
	byStudent   map[int64][]models.EnrollmentDetail
	byCourse    map[int64][]models.EnrollmentDetail
}

func (f *fakeEnrollmentRepo) Find(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if e, ok := f.enrollments[pairKey{studentID, courseID}]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	_, ok := f.enrollments[pairKey{studentID, courseID}]
	return ok, nil
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	f.enrollments[pairKey{enrollment.StudentID, enrollment.CourseID}] = *enrollment
	return nil
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, studentID, courseID int64) error {
	delete(f.enrollments, pairKey{studentID, courseID})
	return nil
}

func (f *fakeEnrollmentRepo) SetGrade(ctx context.Context, studentID, courseID int64, grade *string) error {
	key := pairKey{studentID, courseID}
	e := f.enrollments[key]
	e.StudentID = studentID
	e.CourseID = courseID
	e.Grade = grade
	f.enrollments[key] = e
	return nil
}

func (f *fakeEnrollmentRepo) ListForStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	return f.byStudent[studentID], nil
}

func (f *fakeEnrollmentRepo) ListForCourse(ctx context.Context, courseID int64) ([]models.EnrollmentDetail, error) {
	return f.byCourse[courseID], nil
}

type fakeStudentReader struct{ ids map[int64]bool }

func (f *fakeStudentReader) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if f.ids[id] {
		return &models.Student{ID: id}, nil
	}
	return nil, sql.ErrNoRows
}

type fakeCourseReader struct{ ids map[int64]bool }

func (f *fakeCourseReader) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	if f.ids[id] {
		return &models.CourseDetail{Course: models.Course{ID: id}}, nil
	}
	return nil, sql.ErrNoRows
}

func newEnrollmentRouter(repo *fakeEnrollmentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewEnrollmentService(repo,
		&fakeStudentReader{ids: map[int64]bool{1: true}},
		&fakeCourseReader{ids: map[int64]bool{2: true}},
		nil, nil)
	h := NewEnrollmentHandler(svc)
	r := gin.New()
	r.POST("/enrollments", h.Enroll)
	r.DELETE("/enrollments/:studentId/:courseId", h.Remove)
	r.PUT("/enrollments/:studentId/:courseId/grade", h.SetGrade)
	r.GET("/students/:id/enrollments", h.ForStudent)
	r.GET("/courses/:id/enrollments", h.ForCourse)
	return r
}

func TestEnrollmentHandlerEnroll(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: make(map[pairKey]models.Enrollment)}
	router := newEnrollmentRouter(repo)

	body := []byte(`{"student_id":1,"course_id":2}`)
	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.enrollments, 1)
}

func TestEnrollmentHandlerEnrollDuplicate(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[pairKey]models.Enrollment{
		{1, 2}: {StudentID: 1, CourseID: 2},
	}}
	router := newEnrollmentRouter(repo)

	body := []byte(`{"student_id":1,"course_id":2}`)
	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEnrollmentHandlerRemove(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[pairKey]models.Enrollment{
		{1, 2}: {StudentID: 1, CourseID: 2},
	}}
	router := newEnrollmentRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/enrollments/1/2", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentHandlerSetGrade(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[pairKey]models.Enrollment{
		{1, 2}: {StudentID: 1, CourseID: 2},
	}}
	router := newEnrollmentRouter(repo)

	body := []byte(`{"grade":"A"}`)
	req := httptest.NewRequest(http.MethodPut, "/enrollments/1/2/grade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.Enrollment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.Grade)
	assert.Equal(t, "A", *envelope.Data.Grade)
}

func TestEnrollmentHandlerForStudent(t *testing.T) {
	grade := "B+"
	repo := &fakeEnrollmentRepo{
		enrollments: make(map[pairKey]models.Enrollment),
		byStudent: map[int64][]models.EnrollmentDetail{
			1: {{
				Enrollment:  models.Enrollment{StudentID: 1, CourseID: 2, Grade: &grade},
				StudentName: "Ada Lovelace",
				CourseName:  "Linear Algebra",
			}},
		},
	}
	router := newEnrollmentRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/1/enrollments", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.EnrollmentDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Linear Algebra", envelope.Data[0].CourseName)
	require.NotNil(t, envelope.Data[0].Grade)
	assert.Equal(t, "B+", *envelope.Data[0].Grade)
}

func TestEnrollmentHandlerForCourse(t *testing.T) {
	repo := &fakeEnrollmentRepo{
		enrollments: make(map[pairKey]models.Enrollment),
		byCourse: map[int64][]models.EnrollmentDetail{
			2: {{
				Enrollment:  models.Enrollment{StudentID: 1, CourseID: 2},
				StudentName: "Ada Lovelace",
				CourseName:  "Linear Algebra",
			}},
		},
	}
	router := newEnrollmentRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/2/enrollments", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.EnrollmentDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Ada Lovelace", envelope.Data[0].StudentName)
}

func TestEnrollmentHandlerSetGradeMissing(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: make(map[pairKey]models.Enrollment)}
	router := newEnrollmentRouter(repo)

	body := []byte(`{"grade":"A"}`)
	req := httptest.NewRequest(http.MethodPut, "/enrollments/1/2/grade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
