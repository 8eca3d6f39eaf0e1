package store

import (
	"sort"
	"strings"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddStudent inserts a student under a generated id.
func (s *Store) AddStudent(data models.Student) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("stu")
	s.students[data.ID] = data
	s.mutated("addStudent")
	return data
}

// UpdateStudent replaces the record keyed by id.
func (s *Store) UpdateStudent(id string, data models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	data.ID = id
	s.students[id] = data
	s.mutated("updateStudent")
	return data, nil
}

// StudentByID returns one student record.
func (s *Store) StudentByID(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	return st, ok
}

// Students lists students matching the filter, ordered by class, section and
// roll, which is the ordering the register views expect.
func (s *Store) Students(filter models.StudentFilter) []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		if filter.ClassName != "" && st.ClassName != filter.ClassName {
			continue
		}
		if filter.Section != "" && st.Section != filter.Section {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(st.Name), search) {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassName != out[j].ClassName {
			return out[i].ClassName < out[j].ClassName
		}
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Roll < out[j].Roll
	})
	return out
}
