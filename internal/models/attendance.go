package models

// AttendanceStatus represents a single day's attendance mark. A missing entry
// means "not recorded", never "absent".
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	default:
		return false
	}
}

// AttendanceMark wraps the status for a student on a date.
type AttendanceMark struct {
	Status AttendanceStatus `json:"status"`
}

// AttendanceBook indexes marks by date, then class-section key, then student id.
type AttendanceBook map[string]map[string]map[string]AttendanceMark

// ClassSectionKey builds the composite attendance key for a class and section.
func ClassSectionKey(className, section string) string {
	return className + "___" + section
}
