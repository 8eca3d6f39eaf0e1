package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/store"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type staffStore interface {
	CreateStaffUser(in store.StaffInput) (models.User, error)
	Users() []models.User
	Teachers() []models.Teacher
	Librarians() []models.Librarian
	DepartmentHeads() []models.DepartmentHead
}

// StaffService registers and lists staff accounts.
type StaffService struct {
	store     staffStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(st staffStore, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{store: st, validator: validate, logger: logger}
}

// CreateStaffRequest describes the admin registration payload. Role accepts
// the English slugs as well as the Bengali form labels.
type CreateStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Phone    string `json:"phone"`
	// Details carries the subject for teachers and the department for
	// department heads.
	Details string `json:"details"`
}

// CreateNewUser registers a staff user together with its staff record.
func (s *StaffService) CreateNewUser(ctx context.Context, req CreateStaffRequest) (models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user, err := s.store.CreateStaffUser(store.StaffInput{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		RoleLabel:    req.Role,
		Phone:        req.Phone,
		Details:      req.Details,
	})
	if err != nil {
		return models.User{}, err
	}

	s.logger.Info("staff user registered",
		zap.String("uid", user.UID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Users lists every account.
func (s *StaffService) Users(ctx context.Context) []models.User {
	return s.store.Users()
}

// Teachers lists teacher staff records.
func (s *StaffService) Teachers(ctx context.Context) []models.Teacher {
	return s.store.Teachers()
}

// Librarians lists librarian staff records.
func (s *StaffService) Librarians(ctx context.Context) []models.Librarian {
	return s.store.Librarians()
}

// DepartmentHeads lists department-head staff records.
func (s *StaffService) DepartmentHeads(ctx context.Context) []models.DepartmentHead {
	return s.store.DepartmentHeads()
}
