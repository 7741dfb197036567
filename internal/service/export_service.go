package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
	"github.com/Sarojsin/school-management-system-by-group/pkg/export"
)

type rosterSource interface {
	ListAll(ctx context.Context) ([]models.Student, error)
	GetByLocalID(ctx context.Context, localID int64) (*models.Student, error)
}

type marksSource interface {
	MarksForStudent(ctx context.Context, studentID int64) ([]models.Mark, error)
}

// ExportService renders administrative downloads. The roster comes out as
// CSV, per-student marks reports as PDF.
type ExportService struct {
	students rosterSource
	marks    marksSource
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(students rosterSource, marks marksSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		marks:    marks,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// StudentRosterCSV renders the full student roster as CSV bytes.
func (s *ExportService) StudentRosterCSV(ctx context.Context) ([]byte, string, error) {
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, "", wrapStoreErr(err, "student")
	}

	data := export.Dataset{
		Headers: []string{"Student Code", "First Name", "Last Name", "Grade", "Section", "Phone", "Guardian", "Guardian Phone"},
		Rows:    make([][]string, 0, len(students)),
	}
	for _, st := range students {
		data.Rows = append(data.Rows, []string{
			st.StudentCode,
			st.FirstName,
			st.LastName,
			st.Grade,
			st.Section,
			st.Phone,
			st.GuardianName,
			st.GuardianPhone,
		})
	}

	out, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "roster export failed")
	}
	return out, "student_roster.csv", nil
}

// StudentMarksPDF renders one student's marks history as a PDF report.
func (s *ExportService) StudentMarksPDF(ctx context.Context, studentLocalID int64) ([]byte, string, error) {
	student, err := s.students.GetByLocalID(ctx, studentLocalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.ErrNotFound
		}
		return nil, "", wrapStoreErr(err, "student")
	}

	marks, err := s.marks.MarksForStudent(ctx, student.ID)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Subject", "Exam", "Obtained", "Total", "Grade", "Date"},
		Rows:    make([][]string, 0, len(marks)),
	}
	for _, m := range marks {
		data.Rows = append(data.Rows, []string{
			m.Subject,
			string(m.ExamType),
			strconv.FormatFloat(m.MarksObtained, 'f', 1, 64),
			strconv.FormatFloat(m.TotalMarks, 'f', 1, 64),
			m.Grade,
			m.ExamDate.Format("2006-01-02"),
		})
	}

	title := fmt.Sprintf("Marks Report - %s %s (%s)", student.FirstName, student.LastName, student.StudentCode)
	out, err := s.pdf.Render(data, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "marks report export failed")
	}
	return out, fmt.Sprintf("marks_%s.pdf", student.StudentCode), nil
}
