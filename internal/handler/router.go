package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/middleware"
	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/service"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth       *AuthHandler
	Students   *StudentHandler
	Staff      *StaffHandler
	Academics  *AcademicHandler
	Attendance *AttendanceHandler
	ClassTests *ClassTestHandler
	Exams      *ExamHandler
	Library    *LibraryHandler
	Leaves     *LeaveHandler
	Notices    *NoticeHandler
	Fees       *FeeHandler
	Settings   *SettingsHandler
	Backups    *BackupHandler

	AuthService     *service.AuthService
	SettingsService *service.SettingsService
}

// RegisterRoutes attaches all API routes under /api/v1.
//
// Everything except login, refresh, public notices and token-based
// backup downloads requires a bearer token. Role gates follow who does
// the work at a school: admins run the office, teachers handle their
// classes, librarians run circulation.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", middleware.JWT(h.AuthService), h.Auth.Logout)
		auth.POST("/logout-all", middleware.JWT(h.AuthService), h.Auth.LogoutAll)
		auth.GET("/me", middleware.JWT(h.AuthService), h.Auth.Me)
	}

	// Public surfaces. Notices are readable without a token and backup
	// downloads authenticate with the signed token in the query string.
	v1.GET("/notices", h.Notices.List)
	v1.GET("/backups/download", h.Backups.Download)

	authed := v1.Group("", middleware.JWT(h.AuthService))

	staffOnly := middleware.RequireRoles(models.RoleAdmin)
	academicStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleDepartmentHead)
	librarians := middleware.RequireRoles(models.RoleAdmin, models.RoleLibrarian)

	students := authed.Group("/students")
	{
		students.GET("", h.Students.List)
		students.GET("/export", academicStaff, h.Students.Export)
		students.GET("/:id", middleware.RBAC("admin", "teacher", "department-head", "SELF"), h.Students.Get)
		students.POST("", staffOnly, h.Students.Create)
		students.PUT("/:id", staffOnly, h.Students.Update)
	}

	staff := authed.Group("", staffOnly)
	{
		staff.POST("/staff", h.Staff.Create)
		staff.GET("/users", h.Staff.Users)
	}
	authed.GET("/teachers", h.Staff.Teachers)
	authed.GET("/librarians", h.Staff.Librarians)
	authed.GET("/department-heads", h.Staff.DepartmentHeads)

	academics := authed.Group("")
	{
		academics.GET("/classes", h.Academics.Classes)
		academics.POST("/classes", staffOnly, h.Academics.CreateClass)
		academics.GET("/sections", h.Academics.Sections)
		academics.POST("/sections", staffOnly, h.Academics.CreateSection)
		academics.GET("/schedules", h.Academics.Schedules)
		academics.POST("/schedules", academicStaff, h.Academics.CreateSchedule)
	}

	attendance := authed.Group("/attendance", academicStaff)
	{
		attendance.POST("", h.Attendance.Mark)
		attendance.GET("", h.Attendance.Sheet)
	}

	classTests := authed.Group("/class-tests")
	{
		classTests.GET("", h.ClassTests.List)
		classTests.GET("/:id/marks", h.ClassTests.Marks)
		classTests.POST("", academicStaff, h.ClassTests.Create)
		classTests.POST("/:id/marks", academicStaff, h.ClassTests.RecordMark)
	}

	exams := authed.Group("/exams", middleware.PremiumExam(h.SettingsService))
	{
		exams.GET("", h.Exams.Exams)
		exams.POST("", academicStaff, h.Exams.CreateExam)
		exams.GET("/routines", h.Exams.Routines)
		exams.POST("/routines", academicStaff, h.Exams.CreateRoutine)
		exams.GET("/rooms", h.Exams.Rooms)
		exams.POST("/rooms", staffOnly, h.Exams.CreateRoom)
		exams.DELETE("/rooms/:id", staffOnly, h.Exams.DeleteRoom)
		exams.GET("/seat-plan", h.Exams.SeatPlan)
		exams.PUT("/seat-plan", academicStaff, h.Exams.AssignSeats)
		exams.GET("/seat-plan/export", h.Exams.ExportSeatPlan)
		exams.GET("/invigilators", h.Exams.Roster)
		exams.PUT("/invigilators", academicStaff, h.Exams.AssignInvigilator)
	}

	library := authed.Group("/library")
	{
		library.GET("/books", h.Library.Books)
		library.POST("/books", librarians, h.Library.CreateBook)
		library.PUT("/books/:id", librarians, h.Library.UpdateBook)
		library.DELETE("/books/:id", librarians, h.Library.DeleteBook)
		library.GET("/issues", librarians, h.Library.Issues)
		library.GET("/issues/:id", librarians, h.Library.IssueByID)
		library.POST("/issues", librarians, h.Library.Issue)
		library.POST("/issues/:id/return", librarians, h.Library.Return)
	}

	leaves := authed.Group("/leaves")
	{
		leaves.GET("", h.Leaves.List)
		leaves.POST("", h.Leaves.File)
		leaves.PUT("/:id/decision", academicStaff, h.Leaves.Decide)
		leaves.DELETE("/:id", academicStaff, h.Leaves.Delete)
	}

	notices := authed.Group("/notices", staffOnly)
	{
		notices.POST("", h.Notices.Publish)
		notices.DELETE("/:id", h.Notices.Delete)
	}

	fees := authed.Group("/fees", staffOnly)
	{
		fees.GET("/invoices", h.Fees.Invoices)
		fees.POST("/invoices", h.Fees.CreateInvoice)
		fees.PUT("/invoices/:id", h.Fees.UpdateInvoice)
		fees.DELETE("/invoices/:id", h.Fees.DeleteInvoice)
		fees.GET("/payments", h.Fees.Payments)
		fees.POST("/payments", h.Fees.RecordPayment)
	}

	settings := authed.Group("/settings")
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", staffOnly, h.Settings.Update)
		settings.GET("/subscription", h.Settings.Subscription)
		settings.PUT("/subscription", staffOnly, h.Settings.UpdateSubscription)
	}

	backups := authed.Group("/backups", staffOnly)
	{
		backups.POST("", h.Backups.Create)
		backups.GET("", h.Backups.List)
		backups.POST("/restore", h.Backups.Restore)
		backups.DELETE("/:id", h.Backups.Delete)
		backups.POST("/:id/token", h.Backups.DownloadToken)
		backups.GET("/archive", h.Backups.Archived)
	}
}
