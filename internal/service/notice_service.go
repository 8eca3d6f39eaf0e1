package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type noticeStore interface {
	AddNotice(data models.Notice) models.Notice
	DeleteNotice(id string) error
	Notices() []models.Notice
}

// NoticeService manages the notice board.
type NoticeService struct {
	store     noticeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs the service.
func NewNoticeService(st noticeStore, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{store: st, validator: validate, logger: logger}
}

// NoticeRequest publishes a notice. Date defaults to today.
type NoticeRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Date    string `json:"date"`
}

// Publish adds a notice to the board.
func (s *NoticeService) Publish(ctx context.Context, req NoticeRequest) (models.Notice, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Notice{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	return s.store.AddNotice(models.Notice{Title: req.Title, Content: req.Content, Date: date}), nil
}

// Delete removes a notice.
func (s *NoticeService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteNotice(id)
}

// List returns the board contents.
func (s *NoticeService) List(ctx context.Context) []models.Notice {
	return s.store.Notices()
}
