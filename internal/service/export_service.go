package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/export"
)

type exportStore interface {
	Students(filter models.StudentFilter) []models.Student
	StudentByID(id string) (models.Student, bool)
	SeatPlanFor(examID, date string) map[string][]string
	RosterFor(examID, date string) map[string]string
	RoomByID(id string) (models.Room, bool)
	TeacherByID(id string) (models.Teacher, bool)
	Settings() models.SchoolSettings
}

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered document.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders student registers and seat plans as CSV or PDF with
// the school letterhead.
type ExportService struct {
	store  exportStore
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(st exportStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:  st,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// StudentList renders the register for a class section.
func (s *ExportService) StudentList(ctx context.Context, filter models.StudentFilter, format ExportFormat) (*ExportResult, error) {
	students := s.store.Students(filter)
	data := export.Dataset{
		Headers: []string{"Roll", "Name", "Class", "Section", "Guardian", "Contact"},
		Rows:    make([]map[string]string, 0, len(students)),
	}
	for _, st := range students {
		data.Rows = append(data.Rows, map[string]string{
			"Roll":     strconv.Itoa(st.Roll),
			"Name":     st.Name,
			"Class":    st.ClassName,
			"Section":  st.Section,
			"Guardian": st.GuardianName,
			"Contact":  st.Contact,
		})
	}
	return s.render(data, "student_list", "Student List", format)
}

// SeatPlan renders the room assignments for an exam date, students and
// invigilators resolved to names where known.
func (s *ExportService) SeatPlan(ctx context.Context, examID, date string, format ExportFormat) (*ExportResult, error) {
	plan := s.store.SeatPlanFor(examID, date)
	roster := s.store.RosterFor(examID, date)
	data := export.Dataset{
		Headers: []string{"Room", "Invigilator", "Seat", "Student", "Class", "Section"},
	}

	roomIDs := make([]string, 0, len(plan))
	for roomID := range plan {
		roomIDs = append(roomIDs, roomID)
	}
	sort.Strings(roomIDs)

	for _, roomID := range roomIDs {
		roomName := roomID
		if room, ok := s.store.RoomByID(roomID); ok {
			roomName = room.Name
		}
		invigilator := ""
		if teacherID, ok := roster[roomID]; ok {
			invigilator = teacherID
			if teacher, ok := s.store.TeacherByID(teacherID); ok {
				invigilator = teacher.Name
			}
		}
		for seat, studentID := range plan[roomID] {
			name, className, section := studentID, "", ""
			if st, ok := s.store.StudentByID(studentID); ok {
				name, className, section = st.Name, st.ClassName, st.Section
			}
			data.Rows = append(data.Rows, map[string]string{
				"Room":        roomName,
				"Invigilator": invigilator,
				"Seat":        strconv.Itoa(seat + 1),
				"Student":     name,
				"Class":       className,
				"Section":     section,
			})
		}
	}
	return s.render(data, "seat_plan_"+date, "Seat Plan "+date, format)
}

func (s *ExportService) render(data export.Dataset, baseName, title string, format ExportFormat) (*ExportResult, error) {
	settings := s.store.Settings()
	head := export.Letterhead{
		SchoolName:    settings.SchoolName,
		PrincipalName: settings.PrincipalName,
	}

	switch format {
	case FormatCSV:
		out, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV")
		}
		return &ExportResult{Data: out, ContentType: "text/csv", Filename: baseName + ".csv"}, nil
	case FormatPDF:
		out, err := s.pdf.Render(data, head, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF")
		}
		return &ExportResult{Data: out, ContentType: "application/pdf", Filename: baseName + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
