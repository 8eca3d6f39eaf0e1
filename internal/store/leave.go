package store

import (
	"sort"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddLeave files a leave request. New requests start pending.
func (s *Store) AddLeave(data models.StudentLeave) models.StudentLeave {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("leave")
	if data.Status == "" {
		data.Status = models.LeavePending
	}
	s.leaves[data.ID] = data
	s.mutated("addLeave")
	return data
}

// UpdateLeave replaces a leave record. The status machine only moves
// pending to approved or pending to rejected; approved and rejected are
// terminal.
func (s *Store) UpdateLeave(id string, data models.StudentLeave) (models.StudentLeave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.leaves[id]
	if !ok {
		return models.StudentLeave{}, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
	}
	if data.Status != old.Status && old.Status != models.LeavePending {
		return models.StudentLeave{}, appErrors.Clone(appErrors.ErrInvalidTransition, "leave request is already decided")
	}

	data.ID = id
	s.leaves[id] = data
	s.mutated("updateLeave")
	return data, nil
}

// DeleteLeave removes a leave record by id.
func (s *Store) DeleteLeave(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leaves[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
	}
	delete(s.leaves, id)
	s.mutated("deleteLeave")
	return nil
}

// Leaves lists leave requests sorted by start date, newest first.
func (s *Store) Leaves() []models.StudentLeave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StudentLeave, 0, len(s.leaves))
	for _, l := range s.leaves {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out
}
