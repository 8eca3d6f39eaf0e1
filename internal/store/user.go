package store

import (
	"sort"
	"strings"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// StaffInput is the registration payload for a new staff member. RoleLabel is
// resolved through the fixed label mapping; PasswordHash must already be
// hashed by the caller.
type StaffInput struct {
	Name         string
	Email        string
	PasswordHash string
	RoleLabel    string
	Phone        string
	// Details is the role-specific field: subject for teachers, department
	// for department heads. Ignored for librarians.
	Details string
}

// CreateStaffUser registers one User and its matching staff record. This is
// the store's only multi-collection transactional write: both records become
// visible together or not at all.
func (s *Store) CreateStaffUser(in StaffInput) (models.User, error) {
	role, ok := models.StaffRoleFromLabel(in.RoleLabel)
	if !ok {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, "unknown staff role label")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.TrimSpace(in.Email)
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, appErrors.Clone(appErrors.ErrDuplicateEmail, "user already registered with this email")
		}
	}

	uid := newID("user")
	user := models.User{
		UID:          uid,
		Name:         in.Name,
		Email:        email,
		PasswordHash: in.PasswordHash,
		Role:         role,
	}

	staffID := newID("staff")
	switch role {
	case models.RoleTeacher:
		s.teachers[staffID] = models.Teacher{
			ID:      staffID,
			UID:     uid,
			Name:    in.Name,
			Email:   email,
			Phone:   in.Phone,
			Subject: in.Details,
		}
	case models.RoleLibrarian:
		s.librarians[staffID] = models.Librarian{
			ID:    staffID,
			UID:   uid,
			Name:  in.Name,
			Email: email,
			Phone: in.Phone,
		}
	case models.RoleDepartmentHead:
		user.Department = in.Details
		s.departmentHeads[staffID] = models.DepartmentHead{
			ID:         staffID,
			UID:        uid,
			Name:       in.Name,
			Email:      email,
			Phone:      in.Phone,
			Department: in.Details,
		}
	}

	s.users[uid] = user
	s.mutated("createStaffUser")
	return user.Sanitized(), nil
}

// UserByEmail finds a user record by email, case-insensitively.
func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByUID returns a user record by id.
func (s *Store) UserByUID(uid string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	return u, ok
}

// Users lists all user accounts, passwords stripped, sorted by name.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Sanitized())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Teachers lists teacher staff records sorted by name.
func (s *Store) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Librarians lists librarian staff records sorted by name.
func (s *Store) Librarians() []models.Librarian {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Librarian, 0, len(s.librarians))
	for _, l := range s.librarians {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DepartmentHeads lists department-head staff records sorted by name.
func (s *Store) DepartmentHeads() []models.DepartmentHead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DepartmentHead, 0, len(s.departmentHeads))
	for _, d := range s.departmentHeads {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TeacherByID returns a teacher staff record.
func (s *Store) TeacherByID(id string) (models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teachers[id]
	return t, ok
}
