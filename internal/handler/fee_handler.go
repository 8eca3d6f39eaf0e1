package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// FeeHandler exposes fee invoice and payment endpoints.
type FeeHandler struct {
	fees *service.FeeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees *service.FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// CreateInvoice godoc
// @Summary Create a fee invoice
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.InvoiceRequest true "Invoice payload"
// @Success 201 {object} response.Envelope
// @Router /fees/invoices [post]
func (h *FeeHandler) CreateInvoice(c *gin.Context) {
	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	invoice, err := h.fees.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, invoice)
}

// UpdateInvoice godoc
// @Summary Update a fee invoice
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param payload body service.InvoiceRequest true "Invoice payload"
// @Success 200 {object} response.Envelope
// @Router /fees/invoices/{id} [put]
func (h *FeeHandler) UpdateInvoice(c *gin.Context) {
	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	invoice, err := h.fees.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, invoice, nil)
}

// DeleteInvoice godoc
// @Summary Delete a fee invoice with no payments against it
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Router /fees/invoices/{id} [delete]
func (h *FeeHandler) DeleteInvoice(c *gin.Context) {
	if err := h.fees.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Invoices godoc
// @Summary List fee invoices
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /fees/invoices [get]
func (h *FeeHandler) Invoices(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.fees.Invoices(c.Request.Context()), nil)
}

// RecordPayment godoc
// @Summary Record a student payment against an invoice
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /fees/payments [post]
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, err := h.fees.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// Payments godoc
// @Summary List payments, optionally for one student
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Student ID"
// @Success 200 {object} response.Envelope
// @Router /fees/payments [get]
func (h *FeeHandler) Payments(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.fees.Payments(c.Request.Context(), c.Query("studentId")), nil)
}
