package models

// SubscriptionStatus gates premium features.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "Active"
	SubscriptionInactive SubscriptionStatus = "Inactive"
)

// Subscription is the school's premium plan state.
type Subscription struct {
	Tier    string             `json:"tier"`
	Status  SubscriptionStatus `json:"status"`
	EndDate string             `json:"endDate"`
}

// PremiumFeatures flags individually purchasable capabilities.
type PremiumFeatures struct {
	ExamManagement bool `json:"examManagement"`
}

// SchoolSettings holds school identity and feature flags.
type SchoolSettings struct {
	SchoolName            string          `json:"schoolName"`
	SchoolLogoURL         string          `json:"schoolLogoUrl"`
	PrincipalName         string          `json:"principalName"`
	PrincipalSignatureURL string          `json:"principalSignatureUrl"`
	PremiumFeatures       PremiumFeatures `json:"premiumFeatures"`
}
