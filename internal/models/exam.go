package models

// MainExam is a term examination spanning a date range.
type MainExam struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ExamRoutine is one sitting of a main exam for a class.
type ExamRoutine struct {
	ID        string `json:"id"`
	ExamID    string `json:"examId"`
	Date      string `json:"date"`
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ClassName string `json:"className"`
}

// Room is a physical exam hall with a seat capacity.
type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// SeatPlan assigns ordered student ids to rooms per exam and date. The total
// assigned to a room never exceeds its capacity.
type SeatPlan map[string]map[string]map[string][]string

// InvigilatorRoster assigns one supervising teacher per room per exam date.
type InvigilatorRoster map[string]map[string]map[string]string
