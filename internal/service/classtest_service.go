package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type classTestStore interface {
	AddClassTest(data models.ClassTest) models.ClassTest
	RecordMark(testID, studentID string, marksObtained int) error
	ClassTests() []models.ClassTest
	MarksFor(testID string) map[string]models.MarkEntry
}

// ClassTestService manages teacher-created tests and their marks.
type ClassTestService struct {
	store     classTestStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassTestService constructs the service.
func NewClassTestService(st classTestStore, validate *validator.Validate, logger *zap.Logger) *ClassTestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassTestService{store: st, validator: validate, logger: logger}
}

// ClassTestRequest creates a class test.
type ClassTestRequest struct {
	ExamName   string `json:"examName" validate:"required"`
	ClassName  string `json:"className" validate:"required"`
	Section    string `json:"section" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	TotalMarks int    `json:"totalMarks" validate:"required,min=1"`
	CreatedBy  string `json:"createdBy"`
}

// MarkRequest records one student's result.
type MarkRequest struct {
	StudentID     string `json:"studentId" validate:"required"`
	MarksObtained int    `json:"marksObtained" validate:"min=0"`
}

// Create adds a class test.
func (s *ClassTestService) Create(ctx context.Context, req ClassTestRequest) (models.ClassTest, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ClassTest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class test payload")
	}
	return s.store.AddClassTest(models.ClassTest{
		ExamName:   req.ExamName,
		ClassName:  req.ClassName,
		Section:    req.Section,
		Subject:    req.Subject,
		TotalMarks: req.TotalMarks,
		CreatedBy:  req.CreatedBy,
	}), nil
}

// RecordMark upserts one result for a test.
func (s *ClassTestService) RecordMark(ctx context.Context, testID string, req MarkRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark payload")
	}
	return s.store.RecordMark(testID, req.StudentID, req.MarksObtained)
}

// List returns every class test.
func (s *ClassTestService) List(ctx context.Context) []models.ClassTest {
	return s.store.ClassTests()
}

// Marks returns the recorded entries for a test.
func (s *ClassTestService) Marks(ctx context.Context, testID string) map[string]models.MarkEntry {
	return s.store.MarksFor(testID)
}
