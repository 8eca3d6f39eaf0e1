package models

// ClassTest is a teacher-created test for one class section and subject.
type ClassTest struct {
	ID         string `json:"id"`
	ExamName   string `json:"examName"`
	ClassName  string `json:"className"`
	Section    string `json:"section"`
	Subject    string `json:"subject"`
	TotalMarks int    `json:"totalMarks"`
	CreatedBy  string `json:"createdBy"`
}

// MarkEntry holds one student's result for a class test.
type MarkEntry struct {
	MarksObtained int `json:"marksObtained"`
	TotalMarks    int `json:"totalMarks"`
}

// MarksBook indexes mark entries by class-test id, then student id.
type MarksBook map[string]map[string]MarkEntry
