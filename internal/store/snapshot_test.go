package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func populatedStore(t *testing.T) *Store {
	t.Helper()
	s := New()

	_, err := s.CreateStaffUser(StaffInput{Name: "Rahim Uddin", Email: "rahim@school.edu.bd", PasswordHash: "hashed", RoleLabel: "teacher", Details: "Mathematics"})
	require.NoError(t, err)

	stu := s.AddStudent(models.Student{Name: "Anika Rahman", Roll: 1, ClassName: "Class 6", Section: "A", GuardianName: "Mr. Rahman"})
	s.AddClass(models.Class{Name: "Class 6"})
	s.AddSection(models.Section{Name: "A"})
	require.NoError(t, s.UpdateAttendance("2024-07-01", models.ClassSectionKey("Class 6", "A"), stu.ID, models.AttendancePresent))

	test := s.AddClassTest(models.ClassTest{ExamName: "Weekly Test 1", ClassName: "Class 6", Section: "A", Subject: "Bangla", TotalMarks: 20})
	require.NoError(t, s.RecordMark(test.ID, stu.ID, 17))

	exam := s.AddMainExam(models.MainExam{Name: "Half Yearly 2024", StartDate: "2024-06-01"})
	room := s.AddRoom(models.Room{Name: "Room 101", Capacity: 30})
	s.AddExamRoutine(models.ExamRoutine{ExamID: exam.ID, Subject: "Bangla", Date: "2024-06-01"})
	_, err = s.UpdateSeatPlan(exam.ID, "2024-06-01", room.ID, []string{stu.ID})
	require.NoError(t, err)
	s.UpdateInvigilatorRoster(exam.ID, "2024-06-01", room.ID, "t1")

	book := s.AddBook(models.Book{Title: "Gitanjali", Author: "Rabindranath Tagore", TotalQuantity: 3})
	_, err = s.IssueBook(IssueInput{BookID: book.ID, StudentID: stu.ID, IssueDate: "2024-07-01", DueDate: "2024-07-15"})
	require.NoError(t, err)

	s.AddLeave(models.StudentLeave{StudentID: stu.ID, Reason: "fever", StartDate: "2024-07-02", EndDate: "2024-07-04"})
	s.AddNotice(models.Notice{Title: "Summer Holiday", Content: "School closed", Date: "2024-07-10"})

	inv := s.AddFeeInvoice(models.FeeInvoice{Name: "Tuition July", Amount: 1500, DueDate: "2024-07-10"})
	_, err = s.RecordStudentPayment(models.StudentPayment{StudentID: stu.ID, InvoiceID: inv.ID, AmountPaid: 1500, PaymentDate: "2024-07-05"})
	require.NoError(t, err)

	s.UpdateSettings(models.SchoolSettings{SchoolName: "Shikkha Niketan", PrincipalName: "Prof. Alam", PremiumFeatures: models.PremiumFeatures{ExamManagement: true}})
	s.UpdateSubscription(models.Subscription{Tier: "premium", Status: models.SubscriptionActive, EndDate: "2027-01-01"})
	return s
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := populatedStore(t)
	before := s.Snapshot()

	raw, err := json.Marshal(before)
	require.NoError(t, err)

	restored := New()
	require.NoError(t, restored.Restore(raw))
	after := restored.Snapshot()

	assert.Equal(t, before, after)
}

func TestRestoreRejectsMalformedPayloads(t *testing.T) {
	s := populatedStore(t)
	before := s.Snapshot()

	cases := map[string][]byte{
		"not json":         []byte("not a snapshot"),
		"json array":       []byte(`[1, 2, 3]`),
		"missing allUsers": []byte(`{"students":{},"library":{"books":{},"issuedBooks":{}},"settings":{}}`),
		"missing library":  []byte(`{"allUsers":{},"students":{},"settings":{}}`),
		"missing settings": []byte(`{"allUsers":{},"students":{},"library":{"books":{},"issuedBooks":{}}}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			err := s.Restore(raw)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrInvalidFormat))
			assert.Equal(t, before, s.Snapshot(), "failed restore must not touch the store")
		})
	}
}

func TestRestoreDefaultsMissingCollections(t *testing.T) {
	s := populatedStore(t)
	minimal := []byte(`{
		"allUsers": {"user1": {"uid": "user1", "name": "Admin", "email": "admin@school.edu.bd", "role": "admin"}},
		"students": {},
		"library": {"books": {}, "issuedBooks": {}},
		"settings": {"schoolName": "Restored School"}
	}`)

	require.NoError(t, s.Restore(minimal))

	assert.Len(t, s.Users(), 1)
	assert.Empty(t, s.Students(models.StudentFilter{}))
	assert.Empty(t, s.Books())
	assert.Empty(t, s.Notices())
	assert.Empty(t, s.Leaves())
	assert.Empty(t, s.MainExams())
	assert.Equal(t, "Restored School", s.Settings().SchoolName)
	assert.False(t, s.ExamManagementEnabled())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := populatedStore(t)
	snap := s.Snapshot()

	// Mutating the snapshot must not leak into the store.
	for id := range snap.Students {
		st := snap.Students[id]
		st.Name = "Tampered"
		snap.Students[id] = st
	}
	for date := range snap.Attendance {
		for key := range snap.Attendance[date] {
			for sid := range snap.Attendance[date][key] {
				snap.Attendance[date][key][sid] = models.AttendanceMark{Status: models.AttendanceAbsent}
			}
		}
	}

	fresh := s.Snapshot()
	for _, st := range fresh.Students {
		assert.NotEqual(t, "Tampered", st.Name)
	}
	for _, bySection := range fresh.Attendance {
		for _, byStudent := range bySection {
			for _, mark := range byStudent {
				assert.Equal(t, models.AttendancePresent, mark.Status)
			}
		}
	}
}

func TestSnapshotJSONUsesClientFieldNames(t *testing.T) {
	s := populatedStore(t)
	raw, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, key := range []string{"allUsers", "students", "teachers", "librarians", "departmentHeads", "attendance", "classTests", "marks", "mainExams", "examRoutines", "rooms", "seatPlans", "invigilatorRosters", "library", "leaves", "notices", "feeInvoices", "studentPayments", "subscription", "settings"} {
		assert.Contains(t, keys, key)
	}
}
