package models

import "time"

// Snapshot is the full store state as one JSON document. It is both the
// backup file format and the restore input, so the two stay round-trip
// identical.
type Snapshot struct {
	Users             map[string]User           `json:"allUsers"`
	Students          map[string]Student        `json:"students"`
	Teachers          map[string]Teacher        `json:"teachers"`
	Librarians        map[string]Librarian      `json:"librarians"`
	DepartmentHeads   map[string]DepartmentHead `json:"departmentHeads"`
	Classes           map[string]Class          `json:"classes"`
	Sections          map[string]Section        `json:"sections"`
	Schedules         map[string]Schedule       `json:"schedules"`
	Attendance        AttendanceBook            `json:"attendance"`
	ClassTests        map[string]ClassTest      `json:"classTests"`
	Marks             MarksBook                 `json:"marks"`
	MainExams         map[string]MainExam       `json:"mainExams"`
	ExamRoutines      map[string]ExamRoutine    `json:"examRoutines"`
	Rooms             map[string]Room           `json:"rooms"`
	SeatPlans         SeatPlan                  `json:"seatPlans"`
	InvigilatorRoster InvigilatorRoster         `json:"invigilatorRosters"`
	Library           Library                   `json:"library"`
	Leaves            map[string]StudentLeave   `json:"leaves"`
	Notices           map[string]Notice         `json:"notices"`
	FeeInvoices       map[string]FeeInvoice     `json:"feeInvoices"`
	StudentPayments   map[string]StudentPayment `json:"studentPayments"`
	Subscription      Subscription              `json:"subscription"`
	Settings          SchoolSettings            `json:"settings"`
}

// BackupInfo describes one stored backup file.
type BackupInfo struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	SizeBytes int       `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	Trigger   string    `json:"trigger"`
}

// ArchiveRecord is a snapshot row persisted to the Postgres archive.
type ArchiveRecord struct {
	ID        string    `db:"id" json:"id"`
	Trigger   string    `db:"trigger" json:"trigger"`
	Payload   []byte    `db:"payload" json:"-"`
	SizeBytes int       `db:"size_bytes" json:"size_bytes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
