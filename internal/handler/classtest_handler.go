package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// ClassTestHandler exposes class test endpoints.
type ClassTestHandler struct {
	tests *service.ClassTestService
}

// NewClassTestHandler constructs ClassTestHandler.
func NewClassTestHandler(tests *service.ClassTestService) *ClassTestHandler {
	return &ClassTestHandler{tests: tests}
}

// Create godoc
// @Summary Create a class test
// @Tags ClassTests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ClassTestRequest true "Class test payload"
// @Success 201 {object} response.Envelope
// @Router /class-tests [post]
func (h *ClassTestHandler) Create(c *gin.Context) {
	var req service.ClassTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && req.CreatedBy == "" {
		req.CreatedBy = claims.UID
	}
	test, err := h.tests.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, test)
}

// List godoc
// @Summary List class tests
// @Tags ClassTests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /class-tests [get]
func (h *ClassTestHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tests.List(c.Request.Context()), nil)
}

// RecordMark godoc
// @Summary Record one student's marks for a test
// @Tags ClassTests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class test ID"
// @Param payload body service.MarkRequest true "Mark payload"
// @Success 204
// @Router /class-tests/{id}/marks [post]
func (h *ClassTestHandler) RecordMark(c *gin.Context) {
	var req service.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.tests.RecordMark(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Marks godoc
// @Summary List recorded marks for a test
// @Tags ClassTests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class test ID"
// @Success 200 {object} response.Envelope
// @Router /class-tests/{id}/marks [get]
func (h *ClassTestHandler) Marks(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tests.Marks(c.Request.Context(), c.Param("id")), nil)
}
