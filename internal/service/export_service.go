package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/edumatrix/edumatrix-api/internal/models"
	appErrors "github.com/edumatrix/edumatrix-api/pkg/errors"
	"github.com/edumatrix/edumatrix-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

const dateLayout = "2006-01-02"

// exportPageSize matches the repository list cap; exports page through
// every record so tables larger than one page are rendered in full.
const exportPageSize = 200

type studentLister interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
}

type professorLister interface {
	List(ctx context.Context, filter models.ProfessorFilter) ([]models.Professor, int, error)
}

type courseLister interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered document ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders entity listings into downloadable documents.
// Column order matches the corresponding list endpoints.
type ExportService struct {
	students   studentLister
	professors professorLister
	courses    courseLister
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(students studentLister, professors professorLister, courses courseLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{students: students, professors: professors, courses: courses, csv: csv, pdf: pdf, logger: logger}
}

func (s *ExportService) allStudents(ctx context.Context) ([]models.Student, error) {
	var all []models.Student
	for page := 1; ; page++ {
		batch, total, err := s.students.List(ctx, models.StudentFilter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (s *ExportService) allProfessors(ctx context.Context) ([]models.Professor, error) {
	var all []models.Professor
	for page := 1; ; page++ {
		batch, total, err := s.professors.List(ctx, models.ProfessorFilter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (s *ExportService) allCourses(ctx context.Context) ([]models.CourseDetail, error) {
	var all []models.CourseDetail
	for page := 1; ; page++ {
		batch, total, err := s.courses.List(ctx, models.CourseFilter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// Students renders the full student listing.
func (s *ExportService) Students(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	students, err := s.allStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "First Name", "Last Name", "Age", "Degree", "Credits", "GPA"},
	}
	for _, st := range students {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         strconv.FormatInt(st.ID, 10),
			"First Name": st.FirstName,
			"Last Name":  st.LastName,
			"Age":        strconv.Itoa(st.Age),
			"Degree":     st.DegreeProgram,
			"Credits":    strconv.Itoa(st.CompletedCredits),
			"GPA":        strconv.FormatFloat(st.GPA, 'f', 2, 64),
		})
	}
	return s.render(dataset, "students", format)
}

// Professors renders the full professor listing.
func (s *ExportService) Professors(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	professors, err := s.allProfessors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professors for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "First Name", "Last Name", "Department", "Achievement"},
	}
	for _, p := range professors {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":          strconv.FormatInt(p.ID, 10),
			"First Name":  p.FirstName,
			"Last Name":   p.LastName,
			"Department":  p.Department,
			"Achievement": p.AcademicAchievement,
		})
	}
	return s.render(dataset, "professors", format)
}

// Courses renders the full course listing including the professor name.
func (s *ExportService) Courses(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Start Date", "End Date", "Credit Hours", "Professor"},
	}
	for _, c := range courses {
		professor := ""
		if c.ProfessorName != nil {
			professor = *c.ProfessorName
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           strconv.FormatInt(c.ID, 10),
			"Name":         c.Name,
			"Start Date":   c.StartDate.Format(dateLayout),
			"End Date":     c.EndDate.Format(dateLayout),
			"Credit Hours": strconv.Itoa(c.CreditHours),
			"Professor":    professor,
		})
	}
	return s.render(dataset, "courses", format)
}

func (s *ExportService) render(dataset export.Dataset, name string, format ExportFormat) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case FormatCSV, "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s_%s.csv", name, stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(dataset, name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s_%s.pdf", name, stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
