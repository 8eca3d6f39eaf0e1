package models

// LeaveStatus is the lifecycle state of a student leave request.
// pending to approved and pending to rejected are the only transitions.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// StudentLeave is a leave application filed for a student.
type StudentLeave struct {
	ID        string      `json:"id"`
	StudentID string      `json:"studentId"`
	Reason    string      `json:"reason"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Status    LeaveStatus `json:"status"`
}
