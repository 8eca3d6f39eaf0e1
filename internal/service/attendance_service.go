package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type attendanceStore interface {
	UpdateAttendance(date, classSectionKey, studentID string, status models.AttendanceStatus) error
	AttendanceSheet(date, classSectionKey string) map[string]models.AttendanceMark
}

// AttendanceService records and reads daily attendance sheets.
type AttendanceService struct {
	store     attendanceStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(st attendanceStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: st, validator: validate, logger: logger}
}

// MarkAttendanceRequest upserts one student's mark for a date.
type MarkAttendanceRequest struct {
	Date      string `json:"date" validate:"required"`
	ClassName string `json:"className" validate:"required"`
	Section   string `json:"section" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// Mark records one attendance entry. Re-marking the same student on the same
// date overwrites the previous status.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	key := models.ClassSectionKey(req.ClassName, req.Section)
	return s.store.UpdateAttendance(req.Date, key, req.StudentID, models.AttendanceStatus(req.Status))
}

// Sheet returns the recorded marks for a class section on a date.
func (s *AttendanceService) Sheet(ctx context.Context, date, className, section string) (map[string]models.AttendanceMark, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	return s.store.AttendanceSheet(date, models.ClassSectionKey(className, section)), nil
}
