package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/service"
	"github.com/bidyaloy/shikkha-api/internal/store"
)

func TestPremiumExamBlocksWithoutSubscription(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := store.New()
	s.UpdateSettings(models.SchoolSettings{PremiumFeatures: models.PremiumFeatures{ExamManagement: true}})
	settings := service.NewSettingsService(s, nil, nil)

	router := gin.New()
	router.GET("/exams", PremiumExam(settings), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exams", nil))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	s.UpdateSubscription(models.Subscription{Status: models.SubscriptionActive})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exams", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
