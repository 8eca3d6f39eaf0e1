package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/store"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/storage"
)

type fakeArchive struct {
	mu      sync.Mutex
	records []models.ArchiveRecord
}

func (f *fakeArchive) Create(ctx context.Context, record *models.ArchiveRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeArchive) List(ctx context.Context, limit int) ([]models.ArchiveRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ArchiveRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeArchive) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeArchive) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func newBackupService(t *testing.T, archive archiveSink) (*BackupService, *store.Store) {
	t.Helper()
	s := store.New()
	s.AddStudent(models.Student{Name: "Anika Rahman", Roll: 1, ClassName: "Class 6", Section: "A"})
	s.AddBook(models.Book{Title: "Gitanjali", TotalQuantity: 2})
	s.UpdateSettings(models.SchoolSettings{SchoolName: "Shikkha Niketan"})

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewBackupService(s, files, signer, archive, zap.NewNop(), BackupConfig{Retention: 30 * 24 * time.Hour, WorkerRetries: 2})
	return svc, s
}

func TestBackupServiceCreateListDownload(t *testing.T) {
	svc, _ := newBackupService(t, nil)
	ctx := context.Background()

	info, token, err := svc.CreateBackup(ctx, "manual")
	require.NoError(t, err)
	assert.Contains(t, info.Filename, "school_backup_")
	assert.Positive(t, info.SizeBytes)
	assert.NotEmpty(t, token)

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	data, filename, err := svc.ResolveDownload(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, info.Filename, filename)
	assert.Equal(t, info.SizeBytes, len(data))
}

func TestBackupServiceRoundTripThroughFile(t *testing.T) {
	svc, s := newBackupService(t, nil)
	ctx := context.Background()
	before := s.Snapshot()

	_, token, err := svc.CreateBackup(ctx, "manual")
	require.NoError(t, err)
	raw, _, err := svc.ResolveDownload(ctx, token)
	require.NoError(t, err)

	s.AddStudent(models.Student{Name: "Intruder", Roll: 99, ClassName: "Class 9", Section: "Z"})
	require.NoError(t, svc.Restore(ctx, raw))
	assert.Equal(t, before, s.Snapshot())
}

func TestBackupServiceRestoreRejectsGarbage(t *testing.T) {
	svc, _ := newBackupService(t, nil)
	err := svc.Restore(context.Background(), []byte("not json"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidFormat))
}

func TestBackupServiceInvalidDownloadToken(t *testing.T) {
	svc, _ := newBackupService(t, nil)
	_, _, err := svc.ResolveDownload(context.Background(), "bogus.token.here.sig")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestBackupServiceArchivesThroughQueue(t *testing.T) {
	archive := &fakeArchive{}
	svc, _ := newBackupService(t, archive)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.StartWorkers(ctx)
	defer svc.StopWorkers()

	_, _, err := svc.CreateBackup(ctx, "auto")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return archive.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	records, err := svc.ArchivedSnapshots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "auto", records[0].Trigger)
}
