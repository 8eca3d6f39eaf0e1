package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type examStore interface {
	AddMainExam(data models.MainExam) models.MainExam
	AddExamRoutine(data models.ExamRoutine) models.ExamRoutine
	AddRoom(data models.Room) models.Room
	DeleteRoom(id string) error
	UpdateSeatPlan(examID, date, roomID string, studentIDs []string) ([]string, error)
	UpdateInvigilatorRoster(examID, date, roomID, teacherID string)
	MainExams() []models.MainExam
	ExamRoutines(examID string) []models.ExamRoutine
	Rooms() []models.Room
	SeatPlanFor(examID, date string) map[string][]string
	RosterFor(examID, date string) map[string]string
}

// ExamService manages term exams, their routines, rooms, seat plans and
// invigilator rosters.
type ExamService struct {
	store     examStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService constructs the service.
func NewExamService(st examStore, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{store: st, validator: validate, logger: logger}
}

// MainExamRequest creates a term exam.
type MainExamRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// ExamRoutineRequest creates one sitting of an exam.
type ExamRoutineRequest struct {
	ExamID    string `json:"examId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Day       string `json:"day"`
	Subject   string `json:"subject" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	ClassName string `json:"className" validate:"required"`
}

// RoomRequest creates an exam hall.
type RoomRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"min=0"`
}

// SeatPlanRequest merges students into a room assignment for an exam date.
type SeatPlanRequest struct {
	ExamID     string   `json:"examId" validate:"required"`
	Date       string   `json:"date" validate:"required"`
	RoomID     string   `json:"roomId" validate:"required"`
	StudentIDs []string `json:"studentIds" validate:"required,min=1"`
}

// RosterRequest assigns the supervising teacher for a room on an exam date.
type RosterRequest struct {
	ExamID    string `json:"examId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	RoomID    string `json:"roomId" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
}

// CreateMainExam adds a term exam.
func (s *ExamService) CreateMainExam(ctx context.Context, req MainExamRequest) (models.MainExam, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.MainExam{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	for _, d := range []string{req.StartDate, req.EndDate} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return models.MainExam{}, appErrors.Clone(appErrors.ErrValidation, "dates must be formatted YYYY-MM-DD")
		}
	}
	return s.store.AddMainExam(models.MainExam{Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}), nil
}

// CreateRoutine adds one exam sitting.
func (s *ExamService) CreateRoutine(ctx context.Context, req ExamRoutineRequest) (models.ExamRoutine, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ExamRoutine{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid routine payload")
	}
	return s.store.AddExamRoutine(models.ExamRoutine{
		ExamID:    req.ExamID,
		Date:      req.Date,
		Day:       req.Day,
		Subject:   req.Subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ClassName: req.ClassName,
	}), nil
}

// CreateRoom adds an exam hall.
func (s *ExamService) CreateRoom(ctx context.Context, req RoomRequest) (models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	return s.store.AddRoom(models.Room{Name: req.Name, Capacity: req.Capacity}), nil
}

// DeleteRoom removes an exam hall.
func (s *ExamService) DeleteRoom(ctx context.Context, id string) error {
	return s.store.DeleteRoom(id)
}

// AssignSeats merges the requested students into the room's seat plan.
func (s *ExamService) AssignSeats(ctx context.Context, req SeatPlanRequest) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seat plan payload")
	}
	plan, err := s.store.UpdateSeatPlan(req.ExamID, req.Date, req.RoomID, req.StudentIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("seat plan updated",
		zap.String("examId", req.ExamID),
		zap.String("roomId", req.RoomID),
		zap.Int("assigned", len(plan)))
	return plan, nil
}

// AssignInvigilator sets the supervising teacher for a room.
func (s *ExamService) AssignInvigilator(ctx context.Context, req RosterRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	s.store.UpdateInvigilatorRoster(req.ExamID, req.Date, req.RoomID, req.TeacherID)
	return nil
}

// MainExams lists term exams.
func (s *ExamService) MainExams(ctx context.Context) []models.MainExam {
	return s.store.MainExams()
}

// Routines lists sittings, optionally for one exam.
func (s *ExamService) Routines(ctx context.Context, examID string) []models.ExamRoutine {
	return s.store.ExamRoutines(examID)
}

// Rooms lists exam halls.
func (s *ExamService) Rooms(ctx context.Context) []models.Room {
	return s.store.Rooms()
}

// SeatPlan returns room assignments for an exam date.
func (s *ExamService) SeatPlan(ctx context.Context, examID, date string) map[string][]string {
	return s.store.SeatPlanFor(examID, date)
}

// Roster returns invigilator assignments for an exam date.
func (s *ExamService) Roster(ctx context.Context, examID, date string) map[string]string {
	return s.store.RosterFor(examID, date)
}
