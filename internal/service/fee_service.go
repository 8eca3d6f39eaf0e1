package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type feeStore interface {
	AddFeeInvoice(data models.FeeInvoice) models.FeeInvoice
	UpdateFeeInvoice(id string, data models.FeeInvoice) (models.FeeInvoice, error)
	DeleteFeeInvoice(id string) error
	RecordStudentPayment(data models.StudentPayment) (models.StudentPayment, error)
	FeeInvoices() []models.FeeInvoice
	StudentPayments(studentID string) []models.StudentPayment
}

// FeeService manages fee invoices and student payments.
type FeeService struct {
	store     feeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs the service.
func NewFeeService(st feeStore, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{store: st, validator: validate, logger: logger}
}

// InvoiceRequest creates or updates a fee item.
type InvoiceRequest struct {
	Name    string  `json:"name" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	DueDate string  `json:"dueDate" validate:"required"`
}

// PaymentRequest records a payment against an invoice.
type PaymentRequest struct {
	StudentID   string  `json:"studentId" validate:"required"`
	InvoiceID   string  `json:"invoiceId" validate:"required"`
	AmountPaid  float64 `json:"amountPaid" validate:"required,gt=0"`
	PaymentDate string  `json:"paymentDate" validate:"required"`
}

// CreateInvoice adds a fee item.
func (s *FeeService) CreateInvoice(ctx context.Context, req InvoiceRequest) (models.FeeInvoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.FeeInvoice{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invoice payload")
	}
	return s.store.AddFeeInvoice(models.FeeInvoice{Name: req.Name, Amount: req.Amount, DueDate: req.DueDate}), nil
}

// UpdateInvoice replaces a fee item.
func (s *FeeService) UpdateInvoice(ctx context.Context, id string, req InvoiceRequest) (models.FeeInvoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.FeeInvoice{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invoice payload")
	}
	return s.store.UpdateFeeInvoice(id, models.FeeInvoice{Name: req.Name, Amount: req.Amount, DueDate: req.DueDate})
}

// DeleteInvoice removes a fee item unless payments reference it.
func (s *FeeService) DeleteInvoice(ctx context.Context, id string) error {
	return s.store.DeleteFeeInvoice(id)
}

// RecordPayment records a payment for an existing invoice.
func (s *FeeService) RecordPayment(ctx context.Context, req PaymentRequest) (models.StudentPayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.StudentPayment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	payment, err := s.store.RecordStudentPayment(models.StudentPayment{
		StudentID:   req.StudentID,
		InvoiceID:   req.InvoiceID,
		AmountPaid:  req.AmountPaid,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		return models.StudentPayment{}, err
	}
	s.logger.Info("payment recorded", zap.String("invoiceId", req.InvoiceID), zap.Float64("amount", req.AmountPaid))
	return payment, nil
}

// Invoices lists fee items.
func (s *FeeService) Invoices(ctx context.Context) []models.FeeInvoice {
	return s.store.FeeInvoices()
}

// Payments lists payments, optionally filtered by student.
func (s *FeeService) Payments(ctx context.Context, studentID string) []models.StudentPayment {
	return s.store.StudentPayments(studentID)
}
