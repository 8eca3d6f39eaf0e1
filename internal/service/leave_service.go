package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type leaveStore interface {
	AddLeave(data models.StudentLeave) models.StudentLeave
	UpdateLeave(id string, data models.StudentLeave) (models.StudentLeave, error)
	DeleteLeave(id string) error
	Leaves() []models.StudentLeave
}

// LeaveService manages student leave applications.
type LeaveService struct {
	store     leaveStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeaveService constructs the service.
func NewLeaveService(st leaveStore, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{store: st, validator: validate, logger: logger}
}

// LeaveRequest files a leave application.
type LeaveRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// DecideLeaveRequest approves or rejects a pending application.
type DecideLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// File creates a pending leave application.
func (s *LeaveService) File(ctx context.Context, req LeaveRequest) (models.StudentLeave, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.StudentLeave{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload")
	}
	return s.store.AddLeave(models.StudentLeave{
		StudentID: req.StudentID,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}), nil
}

// Decide moves a pending application to approved or rejected.
func (s *LeaveService) Decide(ctx context.Context, id string, req DecideLeaveRequest) (models.StudentLeave, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.StudentLeave{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}
	current, err := s.findLeave(id)
	if err != nil {
		return models.StudentLeave{}, err
	}
	current.Status = models.LeaveStatus(req.Status)
	return s.store.UpdateLeave(id, current)
}

// Delete removes a leave record.
func (s *LeaveService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteLeave(id)
}

// List returns leave applications, newest first.
func (s *LeaveService) List(ctx context.Context) []models.StudentLeave {
	return s.store.Leaves()
}

func (s *LeaveService) findLeave(id string) (models.StudentLeave, error) {
	for _, l := range s.store.Leaves() {
		if l.ID == id {
			return l, nil
		}
	}
	return models.StudentLeave{}, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
}
