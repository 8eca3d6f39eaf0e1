package models

// Teacher is the staff record behind a teacher user.
type Teacher struct {
	ID            string `json:"id"`
	UID           string `json:"uid"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Subject       string `json:"subject"`
	Department    string `json:"department"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// Librarian is the staff record behind a librarian user.
type Librarian struct {
	ID            string `json:"id"`
	UID           string `json:"uid"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// DepartmentHead is the staff record behind a department-head user.
type DepartmentHead struct {
	ID            string `json:"id"`
	UID           string `json:"uid"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Department    string `json:"department"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}
