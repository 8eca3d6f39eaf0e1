package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

type settingsStore interface {
	UpdateSettings(data models.SchoolSettings)
	Settings() models.SchoolSettings
	UpdateSubscription(data models.Subscription)
	Subscription() models.Subscription
	ExamManagementEnabled() bool
}

// SettingsService manages school identity, feature flags and the
// subscription.
type SettingsService struct {
	store     settingsStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the service.
func NewSettingsService(st settingsStore, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: st, validator: validate, logger: logger}
}

// SettingsRequest replaces the school settings.
type SettingsRequest struct {
	SchoolName            string `json:"schoolName" validate:"required"`
	SchoolLogoURL         string `json:"schoolLogoUrl"`
	PrincipalName         string `json:"principalName"`
	PrincipalSignatureURL string `json:"principalSignatureUrl"`
	ExamManagement        bool   `json:"examManagement"`
}

// SubscriptionRequest replaces the subscription state.
type SubscriptionRequest struct {
	Tier    string `json:"tier" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=Active Inactive"`
	EndDate string `json:"endDate"`
}

// Update replaces school settings.
func (s *SettingsService) Update(ctx context.Context, req SettingsRequest) (models.SchoolSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SchoolSettings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	settings := models.SchoolSettings{
		SchoolName:            req.SchoolName,
		SchoolLogoURL:         req.SchoolLogoURL,
		PrincipalName:         req.PrincipalName,
		PrincipalSignatureURL: req.PrincipalSignatureURL,
		PremiumFeatures:       models.PremiumFeatures{ExamManagement: req.ExamManagement},
	}
	s.store.UpdateSettings(settings)
	return settings, nil
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) models.SchoolSettings {
	return s.store.Settings()
}

// UpdateSubscription replaces the subscription record.
func (s *SettingsService) UpdateSubscription(ctx context.Context, req SubscriptionRequest) (models.Subscription, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Subscription{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subscription payload")
	}
	sub := models.Subscription{Tier: req.Tier, Status: models.SubscriptionStatus(req.Status), EndDate: req.EndDate}
	s.store.UpdateSubscription(sub)
	s.logger.Info("subscription updated", zap.String("tier", sub.Tier), zap.String("status", string(sub.Status)))
	return sub, nil
}

// Subscription returns the current subscription state.
func (s *SettingsService) Subscription(ctx context.Context) models.Subscription {
	return s.store.Subscription()
}

// ExamManagementEnabled reports whether the premium exam feature is usable.
func (s *SettingsService) ExamManagementEnabled(ctx context.Context) bool {
	return s.store.ExamManagementEnabled()
}
