package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// AcademicHandler exposes class, section and schedule endpoints.
type AcademicHandler struct {
	academics *service.AcademicService
}

// NewAcademicHandler constructs AcademicHandler.
func NewAcademicHandler(academics *service.AcademicService) *AcademicHandler {
	return &AcademicHandler{academics: academics}
}

// CreateClass godoc
// @Summary Add a class
// @Tags Academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.NameRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *AcademicHandler) CreateClass(c *gin.Context) {
	var req service.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.academics.CreateClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Classes godoc
// @Summary List classes
// @Tags Academics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *AcademicHandler) Classes(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.academics.Classes(c.Request.Context()), nil)
}

// CreateSection godoc
// @Summary Add a section
// @Tags Academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.NameRequest true "Section payload"
// @Success 201 {object} response.Envelope
// @Router /sections [post]
func (h *AcademicHandler) CreateSection(c *gin.Context) {
	var req service.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	section, err := h.academics.CreateSection(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, section)
}

// Sections godoc
// @Summary List sections
// @Tags Academics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /sections [get]
func (h *AcademicHandler) Sections(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.academics.Sections(c.Request.Context()), nil)
}

// CreateSchedule godoc
// @Summary Add a timetable slot
// @Tags Academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *AcademicHandler) CreateSchedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.academics.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Schedules godoc
// @Summary List timetable slots
// @Tags Academics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *AcademicHandler) Schedules(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.academics.Schedules(c.Request.Context()), nil)
}
