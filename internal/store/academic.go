package store

import (
	"sort"

	"github.com/bidyaloy/shikkha-api/internal/models"
)

// AddClass inserts a class under a generated id.
func (s *Store) AddClass(data models.Class) models.Class {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("cls")
	s.classes[data.ID] = data
	s.mutated("addClass")
	return data
}

// AddSection inserts a section under a generated id.
func (s *Store) AddSection(data models.Section) models.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("sec")
	s.sections[data.ID] = data
	s.mutated("addSection")
	return data
}

// AddSchedule inserts a timetable slot under a generated id.
func (s *Store) AddSchedule(data models.Schedule) models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("sch")
	s.schedules[data.ID] = data
	s.mutated("addSchedule")
	return data
}

// Classes lists classes sorted by name.
func (s *Store) Classes() []models.Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Class, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Sections lists sections sorted by name.
func (s *Store) Sections() []models.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Schedules lists timetable slots sorted by day then start time.
func (s *Store) Schedules() []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Schedule, 0, len(s.schedules))
	for _, sch := range s.schedules {
		out = append(out, sch)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
