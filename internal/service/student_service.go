package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type studentStore interface {
	AddStudent(data models.Student) models.Student
	UpdateStudent(id string, data models.Student) (models.Student, error)
	StudentByID(id string) (models.Student, bool)
	Students(filter models.StudentFilter) []models.Student
}

// StudentService manages enrollment records.
type StudentService struct {
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(st studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: st, validator: validate, logger: logger}
}

// StudentRequest is the create and update payload.
type StudentRequest struct {
	Name          string `json:"name" validate:"required"`
	Roll          int    `json:"roll" validate:"required,min=1"`
	ClassName     string `json:"className" validate:"required"`
	Section       string `json:"section" validate:"required"`
	GuardianName  string `json:"guardianName" validate:"required"`
	Contact       string `json:"contact" validate:"required"`
	GuardianEmail string `json:"guardianEmail" validate:"omitempty,email"`
	ProfilePicURL string `json:"profilePicUrl"`
}

func (r StudentRequest) toModel() models.Student {
	return models.Student{
		Name:          r.Name,
		Roll:          r.Roll,
		ClassName:     r.ClassName,
		Section:       r.Section,
		GuardianName:  r.GuardianName,
		Contact:       r.Contact,
		GuardianEmail: r.GuardianEmail,
		ProfilePicURL: r.ProfilePicURL,
	}
}

// Create enrolls a new student.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := s.store.AddStudent(req.toModel())
	s.logger.Info("student enrolled", zap.String("id", student.ID), zap.String("class", student.ClassName))
	return student, nil
}

// Update replaces an existing student record.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	return s.store.UpdateStudent(id, req.toModel())
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id string) (models.Student, error) {
	student, ok := s.store.StudentByID(id)
	if !ok {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) []models.Student {
	return s.store.Students(filter)
}
