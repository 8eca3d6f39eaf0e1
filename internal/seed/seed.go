package seed

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/bidyaloy/shikkha-api/internal/models"
)

// demoPassword is the login password for every seeded account.
const demoPassword = "password"

// Demo builds the sample school dataset loaded on first boot when demo
// seeding is enabled. Every account logs in with "password".
func Demo() (models.Snapshot, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.Snapshot{}, err
	}
	pw := string(hash)

	snap := models.Snapshot{
		Users: map[string]models.User{
			"user-admin": {UID: "user-admin", Name: "Mohammad Alam", Email: "admin@school.edu.bd", PasswordHash: pw, Role: models.RoleAdmin},
			"user-t1":    {UID: "user-t1", Name: "Rahim Uddin", Email: "rahim@school.edu.bd", PasswordHash: pw, Role: models.RoleTeacher},
			"user-t2":    {UID: "user-t2", Name: "Shirin Akter", Email: "shirin@school.edu.bd", PasswordHash: pw, Role: models.RoleTeacher},
			"user-lib":   {UID: "user-lib", Name: "Karima Begum", Email: "karima@school.edu.bd", PasswordHash: pw, Role: models.RoleLibrarian},
			"user-dh":    {UID: "user-dh", Name: "Abdul Karim", Email: "abdul@school.edu.bd", PasswordHash: pw, Role: models.RoleDepartmentHead, Department: "Science"},
		},
		Teachers: map[string]models.Teacher{
			"staff-t1": {ID: "staff-t1", UID: "user-t1", Name: "Rahim Uddin", Email: "rahim@school.edu.bd", Phone: "01711000001", Subject: "Mathematics"},
			"staff-t2": {ID: "staff-t2", UID: "user-t2", Name: "Shirin Akter", Email: "shirin@school.edu.bd", Phone: "01711000002", Subject: "Bangla"},
		},
		Librarians: map[string]models.Librarian{
			"staff-lib": {ID: "staff-lib", UID: "user-lib", Name: "Karima Begum", Email: "karima@school.edu.bd", Phone: "01711000003"},
		},
		DepartmentHeads: map[string]models.DepartmentHead{
			"staff-dh": {ID: "staff-dh", UID: "user-dh", Name: "Abdul Karim", Email: "abdul@school.edu.bd", Phone: "01711000004", Department: "Science"},
		},
		Students: map[string]models.Student{
			"stu-001": {ID: "stu-001", Name: "Anika Rahman", Roll: 1, ClassName: "Class 6", Section: "A", GuardianName: "Fazlur Rahman", Contact: "01811000001"},
			"stu-002": {ID: "stu-002", Name: "Tanvir Hasan", Roll: 2, ClassName: "Class 6", Section: "A", GuardianName: "Mahbub Hasan", Contact: "01811000002"},
			"stu-003": {ID: "stu-003", Name: "Sadia Islam", Roll: 1, ClassName: "Class 6", Section: "B", GuardianName: "Nurul Islam", Contact: "01811000003"},
			"stu-004": {ID: "stu-004", Name: "Rafiq Ahmed", Roll: 1, ClassName: "Class 7", Section: "A", GuardianName: "Shafiq Ahmed", Contact: "01811000004"},
		},
		Classes: map[string]models.Class{
			"cls-6": {ID: "cls-6", Name: "Class 6"},
			"cls-7": {ID: "cls-7", Name: "Class 7"},
		},
		Sections: map[string]models.Section{
			"sec-a": {ID: "sec-a", Name: "A"},
			"sec-b": {ID: "sec-b", Name: "B"},
		},
		Schedules: map[string]models.Schedule{
			"sch-001": {ID: "sch-001", Day: "1", StartTime: "09:00", EndTime: "09:45", ClassName: "Class 6", Section: "A", Subject: "Mathematics", TeacherID: "staff-t1"},
			"sch-002": {ID: "sch-002", Day: "1", StartTime: "09:45", EndTime: "10:30", ClassName: "Class 6", Section: "A", Subject: "Bangla", TeacherID: "staff-t2"},
		},
		Attendance: models.AttendanceBook{},
		ClassTests: map[string]models.ClassTest{},
		Marks:      models.MarksBook{},
		MainExams:  map[string]models.MainExam{},
		ExamRoutines: map[string]models.ExamRoutine{},
		Rooms: map[string]models.Room{
			"room-101": {ID: "room-101", Name: "Room 101", Capacity: 30},
			"room-102": {ID: "room-102", Name: "Room 102", Capacity: 25},
		},
		SeatPlans:         models.SeatPlan{},
		InvigilatorRoster: models.InvigilatorRoster{},
		Library: models.Library{
			Books: map[string]models.Book{
				"book-001": {ID: "book-001", Title: "Gitanjali", Author: "Rabindranath Tagore", TotalQuantity: 5, AvailableQuantity: 5},
				"book-002": {ID: "book-002", Title: "Pather Panchali", Author: "Bibhutibhushan Bandyopadhyay", TotalQuantity: 3, AvailableQuantity: 3},
				"book-003": {ID: "book-003", Title: "Feluda Samagra", Author: "Satyajit Ray", TotalQuantity: 2, AvailableQuantity: 2},
			},
			IssuedBooks: map[string]models.IssuedBook{},
		},
		Leaves: map[string]models.StudentLeave{},
		Notices: map[string]models.Notice{
			"not-001": {ID: "not-001", Title: "Welcome Back", Content: "Classes resume Sunday after the summer break.", Date: "2024-07-01"},
		},
		FeeInvoices: map[string]models.FeeInvoice{
			"inv-001": {ID: "inv-001", Name: "Tuition July", Amount: 1500, DueDate: "2024-07-10"},
		},
		StudentPayments: map[string]models.StudentPayment{},
		Subscription:    models.Subscription{Tier: "premium", Status: models.SubscriptionActive, EndDate: "2027-01-01"},
		Settings: models.SchoolSettings{
			SchoolName:      "Shikkha Niketan High School",
			PrincipalName:   "Prof. Mohammad Alam",
			PremiumFeatures: models.PremiumFeatures{ExamManagement: true},
		},
	}
	return snap, nil
}
