package models

// Student is a pupil enrolled in a class section. ClassName and Section are
// string join keys shared with schedules and attendance, not entity ids.
type Student struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Roll          int    `json:"roll"`
	ClassName     string `json:"className"`
	Section       string `json:"section"`
	GuardianName  string `json:"guardianName"`
	Contact       string `json:"contact"`
	GuardianEmail string `json:"guardianEmail,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// StudentFilter captures filtering criteria for listing students.
type StudentFilter struct {
	ClassName string
	Section   string
	Search    string
}
