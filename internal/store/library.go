package store

import (
	"sort"
	"time"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddBook inserts a book under a generated id. Every copy starts available.
func (s *Store) AddBook(data models.Book) models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("book")
	data.AvailableQuantity = data.TotalQuantity
	s.books[data.ID] = data
	s.mutated("addBook")
	return data
}

// UpdateBook replaces a book record. Availability is carried over by applying
// the total-quantity delta to the old availability, so copies currently out
// stay accounted for. Clamped at zero.
func (s *Store) UpdateBook(id string, data models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.books[id]
	if !ok {
		return models.Book{}, appErrors.Clone(appErrors.ErrNotFound, "book not found")
	}

	data.ID = id
	data.AvailableQuantity = old.AvailableQuantity + (data.TotalQuantity - old.TotalQuantity)
	if data.AvailableQuantity < 0 {
		data.AvailableQuantity = 0
	}
	s.books[id] = data
	s.mutated("updateBook")
	return data, nil
}

// DeleteBook removes a book. Outstanding issues are not checked; reconciling
// the ledger before deletion is the caller's contract.
func (s *Store) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "book not found")
	}
	delete(s.books, id)
	s.mutated("deleteBook")
	return nil
}

// IssueInput is the lend request for one copy.
type IssueInput struct {
	BookID    string
	StudentID string
	IssueDate string
	DueDate   string
}

// IssueBook lends one copy: the availability check and decrement happen under
// the same lock, so the last copy can only be issued once.
func (s *Store) IssueBook(in IssueInput) (models.IssuedBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[in.BookID]
	if !ok {
		return models.IssuedBook{}, appErrors.Clone(appErrors.ErrNotFound, "book not found")
	}
	if book.AvailableQuantity <= 0 {
		return models.IssuedBook{}, appErrors.Clone(appErrors.ErrNotAvailable, "no copies of this book are available")
	}

	book.AvailableQuantity--
	s.books[in.BookID] = book

	issue := models.IssuedBook{
		ID:        newID("issue"),
		BookID:    in.BookID,
		StudentID: in.StudentID,
		IssueDate: in.IssueDate,
		DueDate:   in.DueDate,
		Status:    models.IssueStatusIssued,
	}
	s.issuedBooks[issue.ID] = issue
	s.mutated("issueBook")
	return issue, nil
}

// ReturnBook closes an issue: status flips to returned, the return date is
// stamped, and the book's availability is restored if the book still exists.
// Only records still in the issued state transition, which keeps a repeated
// return from double-incrementing availability.
func (s *Store) ReturnBook(issueID string) (models.IssuedBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.issuedBooks[issueID]
	if !ok {
		return models.IssuedBook{}, appErrors.Clone(appErrors.ErrNotFound, "issue record not found")
	}
	if issue.Status != models.IssueStatusIssued {
		return models.IssuedBook{}, appErrors.Clone(appErrors.ErrInvalidTransition, "book is already returned")
	}

	if book, ok := s.books[issue.BookID]; ok {
		book.AvailableQuantity++
		if book.AvailableQuantity > book.TotalQuantity {
			book.AvailableQuantity = book.TotalQuantity
		}
		s.books[issue.BookID] = book
	}

	issue.Status = models.IssueStatusReturned
	issue.ReturnDate = time.Now().Format("2006-01-02")
	s.issuedBooks[issueID] = issue
	s.mutated("returnBook")
	return issue, nil
}

// Books lists the catalogue sorted by title.
func (s *Store) Books() []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// BookByID returns one book record.
func (s *Store) BookByID(id string) (models.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	return b, ok
}

// IssuedBooks lists the issue ledger, newest issue date first.
func (s *Store) IssuedBooks() []models.IssuedBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.IssuedBook, 0, len(s.issuedBooks))
	for _, i := range s.issuedBooks {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate > out[j].IssueDate })
	return out
}

// IssuedBookByID returns one issue record.
func (s *Store) IssuedBookByID(id string) (models.IssuedBook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.issuedBooks[id]
	return i, ok
}
