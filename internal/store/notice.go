package store

import (
	"sort"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddNotice posts a notice under a generated id.
func (s *Store) AddNotice(data models.Notice) models.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("notice")
	s.notices[data.ID] = data
	s.mutated("addNotice")
	return data
}

// DeleteNotice removes a notice by id.
func (s *Store) DeleteNotice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notices[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "notice not found")
	}
	delete(s.notices, id)
	s.mutated("deleteNotice")
	return nil
}

// Notices lists notices sorted by date, newest first.
func (s *Store) Notices() []models.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notice, 0, len(s.notices))
	for _, n := range s.notices {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
