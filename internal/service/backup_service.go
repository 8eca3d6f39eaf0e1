package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/jobs"
	"github.com/bidyaloy/shikkha-api/pkg/storage"
)

const backupJobType = "archive-snapshot"

type snapshotSource interface {
	Snapshot() models.Snapshot
	Restore(raw []byte) error
}

type archiveSink interface {
	Create(ctx context.Context, record *models.ArchiveRecord) error
	List(ctx context.Context, limit int) ([]models.ArchiveRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// BackupConfig tunes backup behaviour.
type BackupConfig struct {
	Retention     time.Duration
	WorkerRetries int
}

// BackupService serializes the store to dated JSON files, restores uploads,
// hands out signed download links and mirrors snapshots to the optional
// Postgres archive through a background queue.
type BackupService struct {
	store   snapshotSource
	files   *storage.LocalStorage
	signer  *storage.SignedURLSigner
	archive archiveSink
	queue   *jobs.Queue
	logger  *zap.Logger
	config  BackupConfig
}

// NewBackupService constructs the service. archive may be nil, in which case
// snapshots only live on disk.
func NewBackupService(st snapshotSource, files *storage.LocalStorage, signer *storage.SignedURLSigner, archive archiveSink, logger *zap.Logger, config BackupConfig) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &BackupService{
		store:   st,
		files:   files,
		signer:  signer,
		archive: archive,
		logger:  logger,
		config:  config,
	}
	if archive != nil {
		svc.queue = jobs.NewQueue("snapshot-archive", svc.handleArchiveJob, jobs.QueueConfig{
			Workers:    1,
			MaxRetries: config.WorkerRetries,
			Logger:     logger,
		})
	}
	return svc
}

// StartWorkers launches the archive queue when an archive is configured.
func (s *BackupService) StartWorkers(ctx context.Context) {
	if s.queue != nil {
		s.queue.Start(ctx)
	}
}

// StopWorkers drains the archive queue.
func (s *BackupService) StopWorkers() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// CreateBackup snapshots the store into a dated file and returns its
// metadata together with a signed download token. A second backup on the
// same day replaces the first.
func (s *BackupService) CreateBackup(ctx context.Context, trigger string) (models.BackupInfo, string, error) {
	snap := s.store.Snapshot()
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return models.BackupInfo{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize snapshot")
	}

	filename := fmt.Sprintf("school_backup_%s.json", time.Now().Format(dateLayout))
	if _, err := s.files.Save(filename, payload); err != nil {
		return models.BackupInfo{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write backup file")
	}

	info := models.BackupInfo{
		ID:        filename,
		Filename:  filename,
		SizeBytes: len(payload),
		CreatedAt: time.Now().UTC(),
		Trigger:   trigger,
	}

	token, _, err := s.signer.Generate(info.ID, filename)
	if err != nil {
		return models.BackupInfo{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download token")
	}

	if s.queue != nil {
		job := jobs.Job{
			ID:      uuid.NewString(),
			Type:    backupJobType,
			Payload: &models.ArchiveRecord{Trigger: trigger, Payload: payload},
		}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("failed to enqueue archive job", zap.Error(err))
		}
	}

	s.logger.Info("backup created", zap.String("filename", filename), zap.Int("bytes", len(payload)), zap.String("trigger", trigger))
	return info, token, nil
}

// Restore replaces the store from an uploaded snapshot document.
func (s *BackupService) Restore(ctx context.Context, raw []byte) error {
	if err := s.store.Restore(raw); err != nil {
		return err
	}
	s.logger.Info("store restored from snapshot", zap.Int("bytes", len(raw)))
	return nil
}

// List returns the backups currently on disk, newest first by filename date.
func (s *BackupService) List(ctx context.Context) ([]models.BackupInfo, error) {
	names, err := s.files.List()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list backups")
	}
	infos := make([]models.BackupInfo, 0, len(names))
	for _, name := range names {
		fi, err := os.Stat(s.files.Path(name))
		if err != nil {
			continue
		}
		infos = append(infos, models.BackupInfo{
			ID:        name,
			Filename:  name,
			SizeBytes: int(fi.Size()),
			CreatedAt: fi.ModTime().UTC(),
		})
	}
	return infos, nil
}

// SignedDownloadToken issues a fresh download token for an existing backup.
func (s *BackupService) SignedDownloadToken(ctx context.Context, backupID string) (string, time.Time, error) {
	if _, err := os.Stat(s.files.Path(backupID)); err != nil {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "backup not found")
	}
	return s.signer.Generate(backupID, backupID)
}

// ResolveDownload validates a token and returns the backup contents.
func (s *BackupService) ResolveDownload(ctx context.Context, token string) ([]byte, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token")
	}
	data, err := s.files.Read(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "backup not found")
	}
	return data, relPath, nil
}

// Delete removes a backup file from disk.
func (s *BackupService) Delete(ctx context.Context, backupID string) error {
	if _, err := os.Stat(s.files.Path(backupID)); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "backup not found")
	}
	if err := s.files.Delete(backupID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete backup file")
	}
	s.logger.Info("backup deleted", zap.String("filename", backupID))
	return nil
}

// Cleanup prunes on-disk backups and archive rows past the retention window.
func (s *BackupService) Cleanup(ctx context.Context) error {
	if s.config.Retention <= 0 {
		return nil
	}
	removed, err := s.files.CleanupOlderThan(s.config.Retention)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to prune backups")
	}
	if len(removed) > 0 {
		s.logger.Info("pruned backup files", zap.Strings("removed", removed))
	}
	if s.archive != nil {
		pruned, err := s.archive.DeleteOlderThan(ctx, time.Now().Add(-s.config.Retention))
		if err != nil {
			return err
		}
		if pruned > 0 {
			s.logger.Info("pruned archive rows", zap.Int64("count", pruned))
		}
	}
	return nil
}

// ArchivedSnapshots lists rows in the Postgres archive.
func (s *BackupService) ArchivedSnapshots(ctx context.Context, limit int) ([]models.ArchiveRecord, error) {
	if s.archive == nil {
		return []models.ArchiveRecord{}, nil
	}
	return s.archive.List(ctx, limit)
}

func (s *BackupService) handleArchiveJob(ctx context.Context, job jobs.Job) error {
	record, ok := job.Payload.(*models.ArchiveRecord)
	if !ok {
		return fmt.Errorf("unexpected payload for %s job", job.Type)
	}
	return s.archive.Create(ctx, record)
}
