package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func TestCreateStaffUserCreatesBothRecords(t *testing.T) {
	s := New()
	user, err := s.CreateStaffUser(StaffInput{
		Name:         "Rahim Uddin",
		Email:        "rahim@school.edu.bd",
		PasswordHash: "hashed",
		RoleLabel:    "teacher",
		Phone:        "01700000001",
		Details:      "Mathematics",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Empty(t, user.PasswordHash, "returned user must be sanitized")

	teachers := s.Teachers()
	require.Len(t, teachers, 1)
	assert.Equal(t, user.UID, teachers[0].UID)
	assert.Equal(t, "Mathematics", teachers[0].Subject)

	stored, ok := s.UserByEmail("rahim@school.edu.bd")
	require.True(t, ok)
	assert.Equal(t, "hashed", stored.PasswordHash)
}

func TestCreateStaffUserBengaliLabel(t *testing.T) {
	s := New()
	user, err := s.CreateStaffUser(StaffInput{
		Name:         "Karima Begum",
		Email:        "karima@school.edu.bd",
		PasswordHash: "hashed",
		RoleLabel:    "লাইব্রেরিয়ান",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, user.Role)
	assert.Len(t, s.Librarians(), 1)
}

func TestCreateStaffUserDuplicateEmail(t *testing.T) {
	s := New()
	_, err := s.CreateStaffUser(StaffInput{Name: "A", Email: "same@school.edu.bd", PasswordHash: "h", RoleLabel: "teacher"})
	require.NoError(t, err)

	// Case-insensitive match, and the failure must leave no partial write.
	_, err = s.CreateStaffUser(StaffInput{Name: "B", Email: "Same@School.edu.bd", PasswordHash: "h", RoleLabel: "librarian"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateEmail))
	assert.Len(t, s.Users(), 1)
	assert.Len(t, s.Teachers(), 1)
	assert.Empty(t, s.Librarians())
}

func TestCreateStaffUserUnknownLabel(t *testing.T) {
	s := New()
	_, err := s.CreateStaffUser(StaffInput{Name: "X", Email: "x@school.edu.bd", PasswordHash: "h", RoleLabel: "janitor"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, s.Users())
}

func TestUpdateStudent(t *testing.T) {
	s := New()
	created := s.AddStudent(models.Student{Name: "Anika Rahman", Roll: 4, ClassName: "Class 6", Section: "A"})
	require.NotEmpty(t, created.ID)

	updated, err := s.UpdateStudent(created.ID, models.Student{Name: "Anika Rahman", Roll: 4, ClassName: "Class 7", Section: "B"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Class 7", updated.ClassName)

	_, err = s.UpdateStudent("missing", models.Student{Name: "Ghost"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestStudentsFilterAndOrder(t *testing.T) {
	s := New()
	s.AddStudent(models.Student{Name: "Tanvir", Roll: 2, ClassName: "Class 6", Section: "A"})
	s.AddStudent(models.Student{Name: "Anika", Roll: 1, ClassName: "Class 6", Section: "A"})
	s.AddStudent(models.Student{Name: "Sadia", Roll: 1, ClassName: "Class 7", Section: "B"})

	all := s.Students(models.StudentFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "Anika", all[0].Name, "roll order within a section")

	filtered := s.Students(models.StudentFilter{ClassName: "Class 6", Section: "A"})
	assert.Len(t, filtered, 2)

	searched := s.Students(models.StudentFilter{Search: "sad"})
	require.Len(t, searched, 1)
	assert.Equal(t, "Sadia", searched[0].Name)
}

func TestUpdateAttendanceIdempotent(t *testing.T) {
	s := New()
	key := models.ClassSectionKey("Class 6", "A")

	require.NoError(t, s.UpdateAttendance("2024-07-01", key, "std1", models.AttendancePresent))
	require.NoError(t, s.UpdateAttendance("2024-07-01", key, "std1", models.AttendancePresent))
	require.NoError(t, s.UpdateAttendance("2024-07-01", key, "std2", models.AttendanceAbsent))

	sheet := s.AttendanceSheet("2024-07-01", key)
	require.Len(t, sheet, 2)
	assert.Equal(t, models.AttendancePresent, sheet["std1"].Status)

	// Re-marking flips the status rather than appending.
	require.NoError(t, s.UpdateAttendance("2024-07-01", key, "std1", models.AttendanceLeave))
	sheet = s.AttendanceSheet("2024-07-01", key)
	require.Len(t, sheet, 2)
	assert.Equal(t, models.AttendanceLeave, sheet["std1"].Status)
}

func TestUpdateAttendanceRejectsUnknownStatus(t *testing.T) {
	s := New()
	err := s.UpdateAttendance("2024-07-01", models.ClassSectionKey("Class 6", "A"), "std1", "late")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, s.AttendanceSheet("2024-07-01", models.ClassSectionKey("Class 6", "A")))
}

func TestRecordMarkBounds(t *testing.T) {
	s := New()
	test := s.AddClassTest(models.ClassTest{ExamName: "Weekly Test 1", ClassName: "Class 6", Section: "A", Subject: "Bangla", TotalMarks: 20})

	require.NoError(t, s.RecordMark(test.ID, "std1", 18))
	err := s.RecordMark(test.ID, "std2", 25)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	err = s.RecordMark(test.ID, "std2", -1)
	require.Error(t, err)

	marks := s.MarksFor(test.ID)
	require.Len(t, marks, 1)
	assert.Equal(t, 18, marks["std1"].MarksObtained)
	assert.Equal(t, 20, marks["std1"].TotalMarks)

	err = s.RecordMark("missing", "std1", 5)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestLeaveStatusMachine(t *testing.T) {
	s := New()
	leave := s.AddLeave(models.StudentLeave{StudentID: "std1", Reason: "fever", StartDate: "2024-07-01", EndDate: "2024-07-03"})
	assert.Equal(t, models.LeavePending, leave.Status)

	approved, err := s.UpdateLeave(leave.ID, models.StudentLeave{StudentID: "std1", Reason: "fever", StartDate: "2024-07-01", EndDate: "2024-07-03", Status: models.LeaveApproved})
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, approved.Status)

	// Approved is terminal.
	_, err = s.UpdateLeave(leave.ID, models.StudentLeave{StudentID: "std1", Status: models.LeaveRejected})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))

	// Editing other fields without a status change is still allowed.
	_, err = s.UpdateLeave(leave.ID, models.StudentLeave{StudentID: "std1", Reason: "high fever", StartDate: "2024-07-01", EndDate: "2024-07-04", Status: models.LeaveApproved})
	require.NoError(t, err)
}

func TestDeleteFeeInvoiceGuard(t *testing.T) {
	s := New()
	withPayment := s.AddFeeInvoice(models.FeeInvoice{Name: "Tuition July", Amount: 1500, DueDate: "2024-07-10"})
	unpaid := s.AddFeeInvoice(models.FeeInvoice{Name: "Exam Fee", Amount: 300, DueDate: "2024-07-20"})

	_, err := s.RecordStudentPayment(models.StudentPayment{StudentID: "std1", InvoiceID: withPayment.ID, AmountPaid: 1500, PaymentDate: "2024-07-05"})
	require.NoError(t, err)

	err = s.DeleteFeeInvoice(withPayment.ID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrReferencedByPayment))
	assert.Len(t, s.FeeInvoices(), 2)

	require.NoError(t, s.DeleteFeeInvoice(unpaid.ID))
	assert.Len(t, s.FeeInvoices(), 1)
}

func TestRecordStudentPaymentRequiresInvoice(t *testing.T) {
	s := New()
	_, err := s.RecordStudentPayment(models.StudentPayment{StudentID: "std1", InvoiceID: "missing", AmountPaid: 100})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, s.StudentPayments(""))
}

func TestExamManagementEnabled(t *testing.T) {
	s := New()
	assert.False(t, s.ExamManagementEnabled())

	s.UpdateSettings(models.SchoolSettings{SchoolName: "Shikkha Niketan", PremiumFeatures: models.PremiumFeatures{ExamManagement: true}})
	assert.False(t, s.ExamManagementEnabled(), "flag alone is not enough without an active subscription")

	s.UpdateSubscription(models.Subscription{Status: models.SubscriptionActive, EndDate: "2027-01-01"})
	assert.True(t, s.ExamManagementEnabled())

	s.UpdateSubscription(models.Subscription{Status: models.SubscriptionInactive})
	assert.False(t, s.ExamManagementEnabled())
}

func TestMutationHook(t *testing.T) {
	ops := make([]string, 0)
	s := New(WithMutationHook(func(op string) { ops = append(ops, op) }))
	s.AddStudent(models.Student{Name: "Anika"})
	s.AddNotice(models.Notice{Title: "Holiday"})
	assert.Equal(t, []string{"addStudent", "addNotice"}, ops)
}

func TestNewIDShape(t *testing.T) {
	a := newID("stu")
	b := newID("stu")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^stu\d+[a-z0-9]{5}$`, a)
}
