package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type academicStore interface {
	AddClass(data models.Class) models.Class
	AddSection(data models.Section) models.Section
	AddSchedule(data models.Schedule) models.Schedule
	Classes() []models.Class
	Sections() []models.Section
	Schedules() []models.Schedule
}

// AcademicService manages classes, sections and the weekly timetable.
type AcademicService struct {
	store     academicStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicService constructs the service.
func NewAcademicService(st academicStore, validate *validator.Validate, logger *zap.Logger) *AcademicService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicService{store: st, validator: validate, logger: logger}
}

// NameRequest creates a class or a section.
type NameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ScheduleRequest creates a timetable slot. Day is "1" for Sunday through
// "7" for Saturday.
type ScheduleRequest struct {
	Day       string `json:"day" validate:"required,oneof=1 2 3 4 5 6 7"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	ClassName string `json:"className" validate:"required"`
	Section   string `json:"section" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
}

// CreateClass adds a grade level.
func (s *AcademicService) CreateClass(ctx context.Context, req NameRequest) (models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Class{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	return s.store.AddClass(models.Class{Name: req.Name}), nil
}

// CreateSection adds a class subdivision.
func (s *AcademicService) CreateSection(ctx context.Context, req NameRequest) (models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Section{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	return s.store.AddSection(models.Section{Name: req.Name}), nil
}

// CreateSchedule adds a timetable slot.
func (s *AcademicService) CreateSchedule(ctx context.Context, req ScheduleRequest) (models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Schedule{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	return s.store.AddSchedule(models.Schedule{
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ClassName: req.ClassName,
		Section:   req.Section,
		Subject:   req.Subject,
		TeacherID: req.TeacherID,
	}), nil
}

// Classes lists grade levels.
func (s *AcademicService) Classes(ctx context.Context) []models.Class {
	return s.store.Classes()
}

// Sections lists subdivisions.
func (s *AcademicService) Sections(ctx context.Context) []models.Section {
	return s.store.Sections()
}

// Schedules lists timetable slots.
func (s *AcademicService) Schedules(ctx context.Context) []models.Schedule {
	return s.store.Schedules()
}
