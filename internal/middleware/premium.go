package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

type premiumChecker interface {
	ExamManagementEnabled(ctx context.Context) bool
}

// PremiumExam gates exam-management routes behind the premium flag and an
// active subscription. Blocked requests get 402 so clients can prompt an
// upgrade.
func PremiumExam(checker premiumChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.ExamManagementEnabled(c.Request.Context()) {
			response.Error(c, appErrors.ErrPremiumLocked)
			c.Abort()
			return
		}
		c.Next()
	}
}
