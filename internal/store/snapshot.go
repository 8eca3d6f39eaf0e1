package store

import (
	"encoding/json"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// requiredSnapshotKeys must be present at the top level of a restore payload.
// Everything else defaults to an empty collection.
var requiredSnapshotKeys = []string{"allUsers", "students", "library", "settings"}

// Snapshot returns a deep copy of every collection. Pure; safe to serialize
// while the store keeps mutating.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Users:             copyMap(s.users),
		Students:          copyMap(s.students),
		Teachers:          copyMap(s.teachers),
		Librarians:        copyMap(s.librarians),
		DepartmentHeads:   copyMap(s.departmentHeads),
		Classes:           copyMap(s.classes),
		Sections:          copyMap(s.sections),
		Schedules:         copyMap(s.schedules),
		Attendance:        copyAttendance(s.attendance),
		ClassTests:        copyMap(s.classTests),
		Marks:             copyMarks(s.marks),
		MainExams:         copyMap(s.mainExams),
		ExamRoutines:      copyMap(s.examRoutines),
		Rooms:             copyMap(s.rooms),
		SeatPlans:         copySeatPlans(s.seatPlans),
		InvigilatorRoster: copyRosters(s.rosters),
		Library: models.Library{
			Books:       copyMap(s.books),
			IssuedBooks: copyMap(s.issuedBooks),
		},
		Leaves:          copyMap(s.leaves),
		Notices:         copyMap(s.notices),
		FeeInvoices:     copyMap(s.feeInvoices),
		StudentPayments: copyMap(s.studentPayments),
		Subscription:    s.subscription,
		Settings:        s.settings,
	}
}

// Restore replaces every collection from a raw snapshot document. The swap is
// all-or-nothing: validation happens before any collection is touched, and a
// malformed payload fails with InvalidFormat leaving the store unchanged.
func (s *Store) Restore(raw []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidFormat.Code, appErrors.ErrInvalidFormat.Status, "snapshot is not a JSON object")
	}
	for _, key := range requiredSnapshotKeys {
		if _, ok := keys[key]; !ok {
			return appErrors.Clone(appErrors.ErrInvalidFormat, "snapshot missing required key: "+key)
		}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidFormat.Code, appErrors.ErrInvalidFormat.Status, "snapshot shape does not match any collection")
	}

	s.Load(snap)
	return nil
}

// Load replaces every collection from an already-decoded snapshot, defaulting
// missing collections to empty. Used by Restore and by demo seeding.
func (s *Store) Load(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	mergeMap(s.users, snap.Users)
	mergeMap(s.students, snap.Students)
	mergeMap(s.teachers, snap.Teachers)
	mergeMap(s.librarians, snap.Librarians)
	mergeMap(s.departmentHeads, snap.DepartmentHeads)
	mergeMap(s.classes, snap.Classes)
	mergeMap(s.sections, snap.Sections)
	mergeMap(s.schedules, snap.Schedules)
	if snap.Attendance != nil {
		s.attendance = copyAttendance(snap.Attendance)
	}
	mergeMap(s.classTests, snap.ClassTests)
	if snap.Marks != nil {
		s.marks = copyMarks(snap.Marks)
	}
	mergeMap(s.mainExams, snap.MainExams)
	mergeMap(s.examRoutines, snap.ExamRoutines)
	mergeMap(s.rooms, snap.Rooms)
	if snap.SeatPlans != nil {
		s.seatPlans = copySeatPlans(snap.SeatPlans)
	}
	if snap.InvigilatorRoster != nil {
		s.rosters = copyRosters(snap.InvigilatorRoster)
	}
	mergeMap(s.books, snap.Library.Books)
	mergeMap(s.issuedBooks, snap.Library.IssuedBooks)
	mergeMap(s.leaves, snap.Leaves)
	mergeMap(s.notices, snap.Notices)
	mergeMap(s.feeInvoices, snap.FeeInvoices)
	mergeMap(s.studentPayments, snap.StudentPayments)
	s.subscription = snap.Subscription
	s.settings = snap.Settings
	s.mutated("restore")
}

func copyMap[V any](src map[string]V) map[string]V {
	out := make(map[string]V, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func mergeMap[V any](dst, src map[string]V) {
	for k, v := range src {
		dst[k] = v
	}
}

func copyAttendance(src models.AttendanceBook) models.AttendanceBook {
	out := make(models.AttendanceBook, len(src))
	for date, bySection := range src {
		outSection := make(map[string]map[string]models.AttendanceMark, len(bySection))
		for key, byStudent := range bySection {
			outSection[key] = copyMap(byStudent)
		}
		out[date] = outSection
	}
	return out
}

func copyMarks(src models.MarksBook) models.MarksBook {
	out := make(models.MarksBook, len(src))
	for testID, byStudent := range src {
		out[testID] = copyMap(byStudent)
	}
	return out
}

func copySeatPlans(src models.SeatPlan) models.SeatPlan {
	out := make(models.SeatPlan, len(src))
	for examID, byDate := range src {
		outDate := make(map[string]map[string][]string, len(byDate))
		for date, byRoom := range byDate {
			outRoom := make(map[string][]string, len(byRoom))
			for roomID, ids := range byRoom {
				copied := make([]string, len(ids))
				copy(copied, ids)
				outRoom[roomID] = copied
			}
			outDate[date] = outRoom
		}
		out[examID] = outDate
	}
	return out
}

func copyRosters(src models.InvigilatorRoster) models.InvigilatorRoster {
	out := make(models.InvigilatorRoster, len(src))
	for examID, byDate := range src {
		outDate := make(map[string]map[string]string, len(byDate))
		for date, byRoom := range byDate {
			outDate[date] = copyMap(byRoom)
		}
		out[examID] = outDate
	}
	return out
}
