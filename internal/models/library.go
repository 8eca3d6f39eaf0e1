package models

// IssueStatus is the lifecycle state of an issued book.
// The only transition is issued to returned.
type IssueStatus string

const (
	IssueStatusIssued   IssueStatus = "issued"
	IssueStatusReturned IssueStatus = "returned"
)

// Book is a library title with copy accounting.
// 0 <= AvailableQuantity <= TotalQuantity holds at all times.
type Book struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Author            string `json:"author"`
	TotalQuantity     int    `json:"totalQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}

// IssuedBook records one copy lent to a student.
type IssuedBook struct {
	ID         string      `json:"id"`
	BookID     string      `json:"bookId"`
	StudentID  string      `json:"studentId"`
	IssueDate  string      `json:"issueDate"`
	DueDate    string      `json:"dueDate"`
	Status     IssueStatus `json:"status"`
	ReturnDate string      `json:"returnDate,omitempty"`
}

// Library groups book stock and the issue ledger.
type Library struct {
	Books       map[string]Book       `json:"books"`
	IssuedBooks map[string]IssuedBook `json:"issuedBooks"`
}
