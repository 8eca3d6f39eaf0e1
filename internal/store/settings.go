package store

import "github.com/bidyaloy/shikkha-api/internal/models"

// UpdateSettings replaces the school settings record.
func (s *Store) UpdateSettings(data models.SchoolSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = data
	s.mutated("updateSettings")
}

// Settings returns the current school settings.
func (s *Store) Settings() models.SchoolSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSubscription replaces the subscription record.
func (s *Store) UpdateSubscription(data models.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscription = data
	s.mutated("updateSubscription")
}

// Subscription returns the current subscription state.
func (s *Store) Subscription() models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscription
}

// ExamManagementEnabled reports whether the exam-management premium feature
// is usable: the flag must be on and the subscription active.
func (s *Store) ExamManagementEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PremiumFeatures.ExamManagement && s.subscription.Status == models.SubscriptionActive
}
