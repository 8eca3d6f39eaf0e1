package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func TestUpdateSeatPlanMergesWithinCapacity(t *testing.T) {
	s := New()
	room := s.AddRoom(models.Room{Name: "Room 101", Capacity: 4})
	exam := s.AddMainExam(models.MainExam{Name: "Half Yearly 2024"})

	plan, err := s.UpdateSeatPlan(exam.ID, "2024-06-01", room.ID, []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, plan)

	// Merge keeps existing order first, appends new ids, drops duplicates.
	plan, err = s.UpdateSeatPlan(exam.ID, "2024-06-01", room.ID, []string{"s2", "s3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, plan)
}

func TestUpdateSeatPlanCapacityExceeded(t *testing.T) {
	s := New()
	room := s.AddRoom(models.Room{Name: "Room 202", Capacity: 2})
	exam := s.AddMainExam(models.MainExam{Name: "Final 2024"})

	_, err := s.UpdateSeatPlan(exam.ID, "2024-12-01", room.ID, []string{"s1"})
	require.NoError(t, err)

	_, err = s.UpdateSeatPlan(exam.ID, "2024-12-01", room.ID, []string{"s2", "s3"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCapacityExceeded))

	plan := s.SeatPlanFor(exam.ID, "2024-12-01")
	assert.Equal(t, []string{"s1"}, plan[room.ID], "failed merge must leave the plan untouched")
}

func TestUpdateSeatPlanDatesAreIndependent(t *testing.T) {
	s := New()
	room := s.AddRoom(models.Room{Name: "Room 202", Capacity: 2})
	exam := s.AddMainExam(models.MainExam{Name: "Final 2024"})

	_, err := s.UpdateSeatPlan(exam.ID, "2024-12-01", room.ID, []string{"s1", "s2"})
	require.NoError(t, err)

	// The room is full on the 1st but free on the 2nd.
	plan, err := s.UpdateSeatPlan(exam.ID, "2024-12-02", room.ID, []string{"s3", "s4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s4"}, plan)
}

func TestUpdateSeatPlanUnlimitedWhenCapacityUnset(t *testing.T) {
	s := New()
	room := s.AddRoom(models.Room{Name: "Hall"})
	exam := s.AddMainExam(models.MainExam{Name: "Test Exam"})

	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		ids = append(ids, fmt.Sprintf("s%d", i))
	}
	plan, err := s.UpdateSeatPlan(exam.ID, "2024-06-01", room.ID, ids)
	require.NoError(t, err)
	assert.Len(t, plan, 50)
}

func TestUpdateSeatPlanUnknownRoom(t *testing.T) {
	s := New()
	exam := s.AddMainExam(models.MainExam{Name: "Final"})
	_, err := s.UpdateSeatPlan(exam.ID, "2024-12-01", "missing", []string{"s1"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestUpdateInvigilatorRosterOverwrites(t *testing.T) {
	s := New()
	room := s.AddRoom(models.Room{Name: "Room 303", Capacity: 30})
	exam := s.AddMainExam(models.MainExam{Name: "Final 2024"})

	s.UpdateInvigilatorRoster(exam.ID, "2024-12-01", room.ID, "t1")
	s.UpdateInvigilatorRoster(exam.ID, "2024-12-01", room.ID, "t2")

	roster := s.RosterFor(exam.ID, "2024-12-01")
	assert.Equal(t, "t2", roster[room.ID], "roster assignment replaces, it does not merge")
}

func TestDeleteRoom(t *testing.T) {
	s := New()
	room := s.AddRoom(models.Room{Name: "Room 404", Capacity: 10})
	require.NoError(t, s.DeleteRoom(room.ID))
	err := s.DeleteRoom(room.ID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestExamRoutinesFilterByExam(t *testing.T) {
	s := New()
	examA := s.AddMainExam(models.MainExam{Name: "Half Yearly"})
	examB := s.AddMainExam(models.MainExam{Name: "Final"})
	s.AddExamRoutine(models.ExamRoutine{ExamID: examA.ID, Subject: "Bangla", Date: "2024-06-01"})
	s.AddExamRoutine(models.ExamRoutine{ExamID: examA.ID, Subject: "English", Date: "2024-06-03"})
	s.AddExamRoutine(models.ExamRoutine{ExamID: examB.ID, Subject: "Math", Date: "2024-12-01"})

	assert.Len(t, s.ExamRoutines(examA.ID), 2)
	assert.Len(t, s.ExamRoutines(examB.ID), 1)
	assert.Len(t, s.ExamRoutines(""), 3)
}
