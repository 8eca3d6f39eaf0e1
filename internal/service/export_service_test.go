package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/store"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func newExportService(t *testing.T) (*ExportService, *store.Store) {
	t.Helper()
	s := store.New()
	s.UpdateSettings(models.SchoolSettings{SchoolName: "Shikkha Niketan", PrincipalName: "Prof. Alam"})
	s.AddStudent(models.Student{Name: "Anika Rahman", Roll: 1, ClassName: "Class 6", Section: "A", GuardianName: "Fazlur Rahman", Contact: "01811000001"})
	s.AddStudent(models.Student{Name: "Tanvir Hasan", Roll: 2, ClassName: "Class 6", Section: "A", GuardianName: "Mahbub Hasan", Contact: "01811000002"})
	return NewExportService(s, zap.NewNop()), s
}

func TestExportServiceStudentListCSV(t *testing.T) {
	svc, _ := newExportService(t)

	result, err := svc.StudentList(context.Background(), models.StudentFilter{ClassName: "Class 6"}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "student_list.csv", result.Filename)

	body := string(result.Data)
	assert.Contains(t, body, "Roll,Name,Class,Section,Guardian,Contact")
	assert.Contains(t, body, "Anika Rahman")
	assert.Equal(t, 3, strings.Count(body, "\n"), "header plus two rows")
}

func TestExportServiceStudentListPDF(t *testing.T) {
	svc, _ := newExportService(t)

	result, err := svc.StudentList(context.Background(), models.StudentFilter{}, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportServiceSeatPlanCSV(t *testing.T) {
	svc, s := newExportService(t)
	ctx := context.Background()

	room := s.AddRoom(models.Room{Name: "Room 101", Capacity: 30})
	exam := s.AddMainExam(models.MainExam{Name: "Final"})
	students := s.Students(models.StudentFilter{})
	_, err := s.UpdateSeatPlan(exam.ID, "2024-12-01", room.ID, []string{students[0].ID, students[1].ID})
	require.NoError(t, err)

	_, err = s.CreateStaffUser(store.StaffInput{Name: "Rahim Uddin", Email: "rahim@school.edu.bd", PasswordHash: "x", RoleLabel: "teacher"})
	require.NoError(t, err)
	teachers := s.Teachers()
	require.Len(t, teachers, 1)
	s.UpdateInvigilatorRoster(exam.ID, "2024-12-01", room.ID, teachers[0].ID)

	result, err := svc.SeatPlan(ctx, exam.ID, "2024-12-01", FormatCSV)
	require.NoError(t, err)
	body := string(result.Data)
	assert.Contains(t, body, "Room,Invigilator,Seat,Student,Class,Section")
	assert.Contains(t, body, "Room 101")
	assert.Contains(t, body, "Rahim Uddin")
	assert.Contains(t, body, "Anika Rahman")
	assert.Contains(t, body, "Tanvir Hasan")
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc, _ := newExportService(t)
	_, err := svc.StudentList(context.Background(), models.StudentFilter{}, ExportFormat("xlsx"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
