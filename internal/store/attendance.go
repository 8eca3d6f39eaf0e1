package store

import (
	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// UpdateAttendance upserts one student's mark for a date and class-section
// key, creating intermediate levels as needed. Idempotent; last write wins.
func (s *Store) UpdateAttendance(date, classSectionKey, studentID string, status models.AttendanceStatus) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.attendance[date]
	if !ok {
		byDate = make(map[string]map[string]models.AttendanceMark)
		s.attendance[date] = byDate
	}
	bySection, ok := byDate[classSectionKey]
	if !ok {
		bySection = make(map[string]models.AttendanceMark)
		byDate[classSectionKey] = bySection
	}
	bySection[studentID] = models.AttendanceMark{Status: status}
	s.mutated("updateAttendance")
	return nil
}

// AttendanceSheet returns the recorded marks for a date and class-section
// key. Students absent from the sheet were simply not recorded.
func (s *Store) AttendanceSheet(date, classSectionKey string) map[string]models.AttendanceMark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet := make(map[string]models.AttendanceMark)
	if byDate, ok := s.attendance[date]; ok {
		for studentID, mark := range byDate[classSectionKey] {
			sheet[studentID] = mark
		}
	}
	return sheet
}
