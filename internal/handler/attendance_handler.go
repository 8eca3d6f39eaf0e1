package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Mark godoc
// @Summary Record one attendance mark
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 204
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.attendance.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Sheet godoc
// @Summary Read the attendance sheet for a class section on a date
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date YYYY-MM-DD"
// @Param className query string true "Class name"
// @Param section query string true "Section"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	sheet, err := h.attendance.Sheet(c.Request.Context(), c.Query("date"), c.Query("className"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}
