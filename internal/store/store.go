package store

import (
	"sync"

	"github.com/bidyaloy/shikkha-api/internal/models"
)

// Store holds every school collection in memory and is the only sanctioned
// mutation path. A single mutex serializes mutations so that each operation
// is atomic: on failure nothing is left half-written, and two concurrent
// issues of the last copy of a book cannot both succeed.
type Store struct {
	mu sync.RWMutex

	users           map[string]models.User
	students        map[string]models.Student
	teachers        map[string]models.Teacher
	librarians      map[string]models.Librarian
	departmentHeads map[string]models.DepartmentHead
	classes         map[string]models.Class
	sections        map[string]models.Section
	schedules       map[string]models.Schedule
	attendance      models.AttendanceBook
	classTests      map[string]models.ClassTest
	marks           models.MarksBook
	mainExams       map[string]models.MainExam
	examRoutines    map[string]models.ExamRoutine
	rooms           map[string]models.Room
	seatPlans       models.SeatPlan
	rosters         models.InvigilatorRoster
	books           map[string]models.Book
	issuedBooks     map[string]models.IssuedBook
	leaves          map[string]models.StudentLeave
	notices         map[string]models.Notice
	feeInvoices     map[string]models.FeeInvoice
	studentPayments map[string]models.StudentPayment
	subscription    models.Subscription
	settings        models.SchoolSettings

	mutationHook func(op string)
}

// Option customises store construction.
type Option func(*Store)

// WithMutationHook registers a callback invoked after every successful
// mutation, keyed by operation name. Used for metrics.
func WithMutationHook(hook func(op string)) Option {
	return func(s *Store) {
		s.mutationHook = hook
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{}
	s.resetLocked()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resetLocked reinitialises every collection. Callers hold the write lock
// (or exclusive access during construction).
func (s *Store) resetLocked() {
	s.users = make(map[string]models.User)
	s.students = make(map[string]models.Student)
	s.teachers = make(map[string]models.Teacher)
	s.librarians = make(map[string]models.Librarian)
	s.departmentHeads = make(map[string]models.DepartmentHead)
	s.classes = make(map[string]models.Class)
	s.sections = make(map[string]models.Section)
	s.schedules = make(map[string]models.Schedule)
	s.attendance = make(models.AttendanceBook)
	s.classTests = make(map[string]models.ClassTest)
	s.marks = make(models.MarksBook)
	s.mainExams = make(map[string]models.MainExam)
	s.examRoutines = make(map[string]models.ExamRoutine)
	s.rooms = make(map[string]models.Room)
	s.seatPlans = make(models.SeatPlan)
	s.rosters = make(models.InvigilatorRoster)
	s.books = make(map[string]models.Book)
	s.issuedBooks = make(map[string]models.IssuedBook)
	s.leaves = make(map[string]models.StudentLeave)
	s.notices = make(map[string]models.Notice)
	s.feeInvoices = make(map[string]models.FeeInvoice)
	s.studentPayments = make(map[string]models.StudentPayment)
	s.subscription = models.Subscription{}
	s.settings = models.SchoolSettings{}
}

func (s *Store) mutated(op string) {
	if s.mutationHook != nil {
		s.mutationHook(op)
	}
}
