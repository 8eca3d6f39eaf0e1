package store

import (
	"sort"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddMainExam inserts a main exam under a generated id.
func (s *Store) AddMainExam(data models.MainExam) models.MainExam {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("exam")
	s.mainExams[data.ID] = data
	s.mutated("addMainExam")
	return data
}

// AddExamRoutine inserts an exam sitting under a generated id.
func (s *Store) AddExamRoutine(data models.ExamRoutine) models.ExamRoutine {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("er")
	s.examRoutines[data.ID] = data
	s.mutated("addExamRoutine")
	return data
}

// AddRoom inserts an exam hall under a generated id.
func (s *Store) AddRoom(data models.Room) models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("room")
	s.rooms[data.ID] = data
	s.mutated("addRoom")
	return data
}

// DeleteRoom removes a room by id.
func (s *Store) DeleteRoom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}
	delete(s.rooms, id)
	s.mutated("deleteRoom")
	return nil
}

// UpdateSeatPlan merges studentIDs into the existing assignment for the
// (examID, date, roomID) triple: existing ids keep their order, new ids are
// appended in input order, duplicates are dropped. The write is rejected
// wholesale with CapacityExceeded when the combined list would overflow a
// positive room capacity. Keeping a student out of two rooms on the same
// exam date remains the caller's contract; the store does not scan other
// rooms.
func (s *Store) UpdateSeatPlan(examID, date, roomID string, studentIDs []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}

	var existing []string
	if byDate, ok := s.seatPlans[examID]; ok {
		existing = byDate[date][roomID]
	}

	combined := make([]string, 0, len(existing)+len(studentIDs))
	seen := make(map[string]struct{}, len(existing)+len(studentIDs))
	for _, id := range existing {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		combined = append(combined, id)
	}
	for _, id := range studentIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		combined = append(combined, id)
	}

	if room.Capacity > 0 && len(combined) > room.Capacity {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "seat assignment exceeds room capacity")
	}

	byDate, ok := s.seatPlans[examID]
	if !ok {
		byDate = make(map[string]map[string][]string)
		s.seatPlans[examID] = byDate
	}
	byRoom, ok := byDate[date]
	if !ok {
		byRoom = make(map[string][]string)
		byDate[date] = byRoom
	}
	byRoom[roomID] = combined
	s.mutated("updateSeatPlan")

	out := make([]string, len(combined))
	copy(out, combined)
	return out, nil
}

// UpdateInvigilatorRoster upserts the supervising teacher for a room on an
// exam date. Last write wins; double-booking a teacher across rooms is the
// caller's contract.
func (s *Store) UpdateInvigilatorRoster(examID, date, roomID, teacherID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.rosters[examID]
	if !ok {
		byDate = make(map[string]map[string]string)
		s.rosters[examID] = byDate
	}
	byRoom, ok := byDate[date]
	if !ok {
		byRoom = make(map[string]string)
		byDate[date] = byRoom
	}
	byRoom[roomID] = teacherID
	s.mutated("updateInvigilatorRoster")
}

// MainExams lists exams sorted by start date.
func (s *Store) MainExams() []models.MainExam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MainExam, 0, len(s.mainExams))
	for _, e := range s.mainExams {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out
}

// ExamRoutines lists sittings for an exam sorted by date then start time.
func (s *Store) ExamRoutines(examID string) []models.ExamRoutine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ExamRoutine, 0)
	for _, r := range s.examRoutines {
		if examID == "" || r.ExamID == examID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// Rooms lists exam halls sorted by name.
func (s *Store) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RoomByID returns one room record.
func (s *Store) RoomByID(id string) (models.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// SeatPlanFor returns the per-room student assignments for an exam date.
func (s *Store) SeatPlanFor(examID, date string) map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string)
	if byDate, ok := s.seatPlans[examID]; ok {
		for roomID, ids := range byDate[date] {
			copied := make([]string, len(ids))
			copy(copied, ids)
			out[roomID] = copied
		}
	}
	return out
}

// RosterFor returns the per-room invigilator assignments for an exam date.
func (s *Store) RosterFor(examID, date string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string)
	if byDate, ok := s.rosters[examID]; ok {
		for roomID, teacherID := range byDate[date] {
			out[roomID] = teacherID
		}
	}
	return out
}
