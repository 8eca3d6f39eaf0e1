package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// LibraryHandler exposes book catalogue and circulation endpoints.
type LibraryHandler struct {
	library *service.LibraryService
}

// NewLibraryHandler constructs LibraryHandler.
func NewLibraryHandler(library *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// CreateBook godoc
// @Summary Add a book to the catalogue
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.BookRequest true "Book payload"
// @Success 201 {object} response.Envelope
// @Router /library/books [post]
func (h *LibraryHandler) CreateBook(c *gin.Context) {
	var req service.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	book, err := h.library.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, book)
}

// UpdateBook godoc
// @Summary Update a catalogue entry
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param payload body service.BookRequest true "Book payload"
// @Success 200 {object} response.Envelope
// @Router /library/books/{id} [put]
func (h *LibraryHandler) UpdateBook(c *gin.Context) {
	var req service.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	book, err := h.library.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, book, nil)
}

// DeleteBook godoc
// @Summary Remove a book from the catalogue
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204
// @Router /library/books/{id} [delete]
func (h *LibraryHandler) DeleteBook(c *gin.Context) {
	if err := h.library.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Books godoc
// @Summary List the catalogue
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /library/books [get]
func (h *LibraryHandler) Books(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.library.Books(c.Request.Context()), nil)
}

// Issue godoc
// @Summary Issue a book to a student
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.IssueRequest true "Issue payload"
// @Success 201 {object} response.Envelope
// @Router /library/issues [post]
func (h *LibraryHandler) Issue(c *gin.Context) {
	var req service.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	issued, err := h.library.Issue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, issued)
}

// Return godoc
// @Summary Record a book return
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.Envelope
// @Router /library/issues/{id}/return [post]
func (h *LibraryHandler) Return(c *gin.Context) {
	issued, err := h.library.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, issued, nil)
}

// IssueByID godoc
// @Summary Read one circulation record
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.Envelope
// @Router /library/issues/{id} [get]
func (h *LibraryHandler) IssueByID(c *gin.Context) {
	issued, err := h.library.IssuedBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, issued, nil)
}

// Issues godoc
// @Summary List circulation records
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /library/issues [get]
func (h *LibraryHandler) Issues(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.library.IssuedBooks(c.Request.Context()), nil)
}
