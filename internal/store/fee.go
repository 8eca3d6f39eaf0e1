package store

import (
	"sort"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddFeeInvoice inserts a fee item under a generated id.
func (s *Store) AddFeeInvoice(data models.FeeInvoice) models.FeeInvoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("inv")
	s.feeInvoices[data.ID] = data
	s.mutated("addFeeInvoice")
	return data
}

// UpdateFeeInvoice replaces the record keyed by id.
func (s *Store) UpdateFeeInvoice(id string, data models.FeeInvoice) (models.FeeInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feeInvoices[id]; !ok {
		return models.FeeInvoice{}, appErrors.Clone(appErrors.ErrNotFound, "fee invoice not found")
	}
	data.ID = id
	s.feeInvoices[id] = data
	s.mutated("updateFeeInvoice")
	return data, nil
}

// DeleteFeeInvoice removes an invoice unless a payment references it.
// There is no cascading delete.
func (s *Store) DeleteFeeInvoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feeInvoices[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "fee invoice not found")
	}
	for _, p := range s.studentPayments {
		if p.InvoiceID == id {
			return appErrors.Clone(appErrors.ErrReferencedByPayment, "invoice has recorded payments")
		}
	}
	delete(s.feeInvoices, id)
	s.mutated("deleteFeeInvoice")
	return nil
}

// RecordStudentPayment records a payment against an existing invoice.
func (s *Store) RecordStudentPayment(data models.StudentPayment) (models.StudentPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feeInvoices[data.InvoiceID]; !ok {
		return models.StudentPayment{}, appErrors.Clone(appErrors.ErrNotFound, "fee invoice not found")
	}
	data.ID = newID("pay")
	s.studentPayments[data.ID] = data
	s.mutated("recordStudentPayment")
	return data, nil
}

// FeeInvoices lists fee items sorted by due date.
func (s *Store) FeeInvoices() []models.FeeInvoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FeeInvoice, 0, len(s.feeInvoices))
	for _, inv := range s.feeInvoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out
}

// StudentPayments lists payments, optionally filtered by student.
func (s *Store) StudentPayments(studentID string) []models.StudentPayment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StudentPayment, 0)
	for _, p := range s.studentPayments {
		if studentID == "" || p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate > out[j].PaymentDate })
	return out
}
