package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/store"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type libraryStore interface {
	AddBook(data models.Book) models.Book
	UpdateBook(id string, data models.Book) (models.Book, error)
	DeleteBook(id string) error
	IssueBook(in store.IssueInput) (models.IssuedBook, error)
	ReturnBook(issueID string) (models.IssuedBook, error)
	Books() []models.Book
	BookByID(id string) (models.Book, bool)
	IssuedBooks() []models.IssuedBook
	IssuedBookByID(id string) (models.IssuedBook, bool)
}

// LibraryService manages book stock and the issue ledger.
type LibraryService struct {
	store     libraryStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLibraryService constructs the service.
func NewLibraryService(st libraryStore, validate *validator.Validate, logger *zap.Logger) *LibraryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryService{store: st, validator: validate, logger: logger}
}

// BookRequest creates or updates a title.
type BookRequest struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	TotalQuantity int    `json:"totalQuantity" validate:"required,min=1"`
}

// IssueRequest lends one copy to a student.
type IssueRequest struct {
	BookID    string `json:"bookId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate" validate:"required"`
}

// CreateBook adds a title; every copy starts available.
func (s *LibraryService) CreateBook(ctx context.Context, req BookRequest) (models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Book{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}
	return s.store.AddBook(models.Book{Title: req.Title, Author: req.Author, TotalQuantity: req.TotalQuantity}), nil
}

// UpdateBook replaces a title's details. Outstanding issues are preserved in
// the availability recount.
func (s *LibraryService) UpdateBook(ctx context.Context, id string, req BookRequest) (models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Book{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}
	return s.store.UpdateBook(id, models.Book{Title: req.Title, Author: req.Author, TotalQuantity: req.TotalQuantity})
}

// DeleteBook removes a title from stock.
func (s *LibraryService) DeleteBook(ctx context.Context, id string) error {
	return s.store.DeleteBook(id)
}

// Issue lends a copy to a student. The issue date defaults to today.
func (s *LibraryService) Issue(ctx context.Context, req IssueRequest) (models.IssuedBook, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.IssuedBook{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid issue payload")
	}
	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = time.Now().Format(dateLayout)
	}
	issued, err := s.store.IssueBook(store.IssueInput{
		BookID:    req.BookID,
		StudentID: req.StudentID,
		IssueDate: issueDate,
		DueDate:   req.DueDate,
	})
	if err != nil {
		return models.IssuedBook{}, err
	}
	s.logger.Info("book issued", zap.String("bookId", req.BookID), zap.String("studentId", req.StudentID))
	return issued, nil
}

// Return records a copy coming back.
func (s *LibraryService) Return(ctx context.Context, issueID string) (models.IssuedBook, error) {
	return s.store.ReturnBook(issueID)
}

// Books lists stock.
func (s *LibraryService) Books(ctx context.Context) []models.Book {
	return s.store.Books()
}

// IssuedBooks lists the issue ledger.
func (s *LibraryService) IssuedBooks(ctx context.Context) []models.IssuedBook {
	return s.store.IssuedBooks()
}

// IssuedBook returns one circulation record.
func (s *LibraryService) IssuedBook(ctx context.Context, id string) (models.IssuedBook, error) {
	issued, ok := s.store.IssuedBookByID(id)
	if !ok {
		return models.IssuedBook{}, appErrors.Clone(appErrors.ErrNotFound, "issue record not found")
	}
	return issued, nil
}
