package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// ExamHandler exposes exam management endpoints. The whole group sits
// behind the premium gate.
type ExamHandler struct {
	exams   *service.ExamService
	exports *service.ExportService
}

// NewExamHandler constructs ExamHandler.
func NewExamHandler(exams *service.ExamService, exports *service.ExportService) *ExamHandler {
	return &ExamHandler{exams: exams, exports: exports}
}

// CreateExam godoc
// @Summary Create a term exam
// @Tags Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.MainExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Router /exams [post]
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req service.MainExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	exam, err := h.exams.CreateMainExam(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// Exams godoc
// @Summary List term exams
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /exams [get]
func (h *ExamHandler) Exams(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.exams.MainExams(c.Request.Context()), nil)
}

// CreateRoutine godoc
// @Summary Add an exam sitting
// @Tags Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ExamRoutineRequest true "Routine payload"
// @Success 201 {object} response.Envelope
// @Router /exams/routines [post]
func (h *ExamHandler) CreateRoutine(c *gin.Context) {
	var req service.ExamRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	routine, err := h.exams.CreateRoutine(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, routine)
}

// Routines godoc
// @Summary List sittings, optionally for one exam
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param examId query string false "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /exams/routines [get]
func (h *ExamHandler) Routines(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.exams.Routines(c.Request.Context(), c.Query("examId")), nil)
}

// CreateRoom godoc
// @Summary Add an exam hall
// @Tags Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.RoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /exams/rooms [post]
func (h *ExamHandler) CreateRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.exams.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Rooms godoc
// @Summary List exam halls
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /exams/rooms [get]
func (h *ExamHandler) Rooms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.exams.Rooms(c.Request.Context()), nil)
}

// DeleteRoom godoc
// @Summary Remove an exam hall
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Router /exams/rooms/{id} [delete]
func (h *ExamHandler) DeleteRoom(c *gin.Context) {
	if err := h.exams.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignSeats godoc
// @Summary Merge students into a room's seat plan
// @Tags Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SeatPlanRequest true "Seat plan payload"
// @Success 200 {object} response.Envelope
// @Router /exams/seat-plan [put]
func (h *ExamHandler) AssignSeats(c *gin.Context) {
	var req service.SeatPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.exams.AssignSeats(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// SeatPlan godoc
// @Summary Read the seat plan for an exam date
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param examId query string true "Exam ID"
// @Param date query string true "Date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /exams/seat-plan [get]
func (h *ExamHandler) SeatPlan(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.exams.SeatPlan(c.Request.Context(), c.Query("examId"), c.Query("date")), nil)
}

// ExportSeatPlan godoc
// @Summary Export the seat plan as CSV or PDF
// @Tags Exams
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param examId query string true "Exam ID"
// @Param date query string true "Date YYYY-MM-DD"
// @Param format query string false "csv or pdf (default pdf)"
// @Success 200 {file} file
// @Router /exams/seat-plan/export [get]
func (h *ExamHandler) ExportSeatPlan(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "pdf"))
	result, err := h.exports.SeatPlan(c.Request.Context(), c.Query("examId"), c.Query("date"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// AssignInvigilator godoc
// @Summary Assign the supervising teacher for a room
// @Tags Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.RosterRequest true "Roster payload"
// @Success 204
// @Router /exams/invigilators [put]
func (h *ExamHandler) AssignInvigilator(c *gin.Context) {
	var req service.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.exams.AssignInvigilator(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Roster godoc
// @Summary Read the invigilator roster for an exam date
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param examId query string true "Exam ID"
// @Param date query string true "Date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /exams/invigilators [get]
func (h *ExamHandler) Roster(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.exams.Roster(c.Request.Context(), c.Query("examId"), c.Query("date")), nil)
}
