package models

// Class is a grade level. Its name acts as the foreign key used by student,
// schedule and attendance records.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Section is a class subdivision, joined by name like Class.
type Section struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Schedule is a weekly timetable slot. Day is "1" for Sunday through "7".
type Schedule struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ClassName string `json:"className"`
	Section   string `json:"section"`
	Subject   string `json:"subject"`
	TeacherID string `json:"teacherId"`
}
