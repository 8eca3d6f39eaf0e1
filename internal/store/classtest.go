package store

import (
	"sort"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// AddClassTest inserts a class test under a generated id.
func (s *Store) AddClassTest(data models.ClassTest) models.ClassTest {
	s.mu.Lock()
	defer s.mu.Unlock()
	data.ID = newID("ct")
	s.classTests[data.ID] = data
	s.mutated("addClassTest")
	return data
}

// RecordMark upserts one student's result for a class test. Marks above the
// test's total are rejected.
func (s *Store) RecordMark(testID, studentID string, marksObtained int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	test, ok := s.classTests[testID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "class test not found")
	}
	if marksObtained < 0 || marksObtained > test.TotalMarks {
		return appErrors.Clone(appErrors.ErrValidation, "marks obtained exceed the test total")
	}

	byStudent, ok := s.marks[testID]
	if !ok {
		byStudent = make(map[string]models.MarkEntry)
		s.marks[testID] = byStudent
	}
	byStudent[studentID] = models.MarkEntry{MarksObtained: marksObtained, TotalMarks: test.TotalMarks}
	s.mutated("recordMark")
	return nil
}

// ClassTests lists class tests sorted by name.
func (s *Store) ClassTests() []models.ClassTest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClassTest, 0, len(s.classTests))
	for _, ct := range s.classTests {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExamName < out[j].ExamName })
	return out
}

// MarksFor returns the recorded entries for one class test.
func (s *Store) MarksFor(testID string) map[string]models.MarkEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.MarkEntry)
	for studentID, entry := range s.marks[testID] {
		out[studentID] = entry
	}
	return out
}
