package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// StaffHandler exposes staff registration and listing endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Create godoc
// @Summary Register a staff user
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateStaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.staff.CreateNewUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Users godoc
// @Summary List user accounts
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *StaffHandler) Users(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.staff.Users(c.Request.Context()), nil)
}

// Teachers godoc
// @Summary List teachers
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *StaffHandler) Teachers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.staff.Teachers(c.Request.Context()), nil)
}

// Librarians godoc
// @Summary List librarians
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /librarians [get]
func (h *StaffHandler) Librarians(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.staff.Librarians(c.Request.Context()), nil)
}

// DepartmentHeads godoc
// @Summary List department heads
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /department-heads [get]
func (h *StaffHandler) DepartmentHeads(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.staff.DepartmentHeads(c.Request.Context()), nil)
}
