package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/repository"
	"github.com/bidyaloy/shikkha-api/internal/seed"
	"github.com/bidyaloy/shikkha-api/internal/service"
	"github.com/bidyaloy/shikkha-api/internal/store"
	"github.com/bidyaloy/shikkha-api/pkg/storage"
)

type testAPI struct {
	router *gin.Engine
	store  *store.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	snap, err := seed.Demo()
	require.NoError(t, err)
	st.Load(snap)

	sessions := repository.NewSessionRepository(nil, nil)
	authSvc := service.NewAuthService(st, sessions, nil, nil, service.AuthConfig{
		Secret:             "test_secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	settingsSvc := service.NewSettingsService(st, nil, nil)
	exportSvc := service.NewExportService(st, nil)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test_backup_secret", time.Hour)
	backupSvc := service.NewBackupService(st, files, signer, nil, nil, service.BackupConfig{})

	h := Handlers{
		Auth:       NewAuthHandler(authSvc),
		Students:   NewStudentHandler(service.NewStudentService(st, nil, nil), exportSvc),
		Staff:      NewStaffHandler(service.NewStaffService(st, nil, nil)),
		Academics:  NewAcademicHandler(service.NewAcademicService(st, nil, nil)),
		Attendance: NewAttendanceHandler(service.NewAttendanceService(st, nil, nil)),
		ClassTests: NewClassTestHandler(service.NewClassTestService(st, nil, nil)),
		Exams:      NewExamHandler(service.NewExamService(st, nil, nil), exportSvc),
		Library:    NewLibraryHandler(service.NewLibraryService(st, nil, nil)),
		Leaves:     NewLeaveHandler(service.NewLeaveService(st, nil, nil)),
		Notices:    NewNoticeHandler(service.NewNoticeService(st, nil, nil)),
		Fees:       NewFeeHandler(service.NewFeeService(st, nil, nil)),
		Settings:   NewSettingsHandler(settingsSvc),
		Backups:    NewBackupHandler(backupSvc),

		AuthService:     authSvc,
		SettingsService: settingsSvc,
	}

	r := gin.New()
	RegisterRoutes(r, h)
	return &testAPI{router: r, store: st}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func (a *testAPI) loginFull(t *testing.T, email string) models.LoginResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestLoginAndMe(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "admin@school.edu.bd")

	w := api.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@school.edu.bd")
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestLoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin@school.edu.bd", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	api := newTestAPI(t)
	first := api.loginFull(t, "admin@school.edu.bd")
	second := api.loginFull(t, "admin@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/auth/logout-all", first.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, refresh := range []string{first.RefreshToken, second.RefreshToken} {
		w = api.do(t, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": refresh})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/api/v1/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTeacherCannotCreateStaff(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "rahim@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/staff", token, gin.H{
		"name": "New Person", "email": "x@school.edu", "password": "secret1", "role": "teacher",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExamRoutesPremiumGated(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "admin@school.edu.bd")

	w := api.do(t, http.MethodGet, "/api/v1/exams/rooms", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	api.store.UpdateSubscription(models.Subscription{Status: models.SubscriptionInactive})
	w = api.do(t, http.MethodGet, "/api/v1/exams/rooms", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestLibraryIssueAndReturnFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "karima@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/library/issues", token, gin.H{
		"bookId": "book-001", "studentId": "stu-001", "dueDate": "2026-09-30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.IssuedBook `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = api.do(t, http.MethodPost, "/api/v1/library/issues/"+created.Data.ID+"/return", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// second return of the same issue must be rejected
	w = api.do(t, http.MethodPost, "/api/v1/library/issues/"+created.Data.ID+"/return", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLibraryIssueDetail(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "karima@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/library/issues", token, gin.H{
		"bookId": "book-002", "studentId": "stu-002", "dueDate": "2026-09-30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.IssuedBook `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = api.do(t, http.MethodGet, "/api/v1/library/issues/"+created.Data.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "book-002")

	w = api.do(t, http.MethodGet, "/api/v1/library/issues/unknown", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeacherCannotManageLibrary(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "rahim@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/library/books", token, gin.H{
		"title": "New Book", "author": "Somebody", "totalQuantity": 2,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBackupCreateAndDownload(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "admin@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/backups", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Backup        models.BackupInfo `json:"backup"`
			DownloadToken string            `json:"downloadToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.DownloadToken)

	// download is public but token-authenticated
	w = api.do(t, http.MethodGet, "/api/v1/backups/download?token="+created.Data.DownloadToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Students, 4)

	w = api.do(t, http.MethodGet, "/api/v1/backups/download?token=bogus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBackupDelete(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "admin@school.edu.bd")

	w := api.do(t, http.MethodPost, "/api/v1/backups", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Backup models.BackupInfo `json:"backup"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = api.do(t, http.MethodDelete, "/api/v1/backups/"+created.Data.Backup.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/backups/"+created.Data.Backup.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "admin@school.edu.bd")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backups/restore", bytes.NewBufferString("not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// state untouched
	assert.Len(t, api.store.Students(models.StudentFilter{}), 4)
}

func TestStudentExportCSV(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "admin@school.edu.bd")

	w := api.do(t, http.MethodGet, "/api/v1/students/export?format=csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Roll")
}
