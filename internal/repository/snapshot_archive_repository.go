package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

// SnapshotArchiveRepository persists backup snapshots to Postgres so they
// survive beyond the local backup directory. The archive is append-only
// apart from retention pruning.
type SnapshotArchiveRepository struct {
	db *sqlx.DB
}

// NewSnapshotArchiveRepository constructs the repository.
func NewSnapshotArchiveRepository(db *sqlx.DB) *SnapshotArchiveRepository {
	return &SnapshotArchiveRepository{db: db}
}

// Create stores one snapshot row.
func (r *SnapshotArchiveRepository) Create(ctx context.Context, record *models.ArchiveRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.SizeBytes = len(record.Payload)

	const query = `INSERT INTO snapshot_archive (id, trigger, payload, size_bytes, created_at)
	VALUES (:id, :trigger, :payload, :size_bytes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create snapshot archive row: %w", err)
	}
	return nil
}

// GetByID retrieves one archived snapshot including its payload.
func (r *SnapshotArchiveRepository) GetByID(ctx context.Context, id string) (*models.ArchiveRecord, error) {
	const query = `SELECT id, trigger, payload, size_bytes, created_at FROM snapshot_archive WHERE id = $1`
	var record models.ArchiveRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archived snapshot not found")
		}
		return nil, fmt.Errorf("get snapshot archive row: %w", err)
	}
	return &record, nil
}

// List returns archive metadata newest first, payloads excluded.
func (r *SnapshotArchiveRepository) List(ctx context.Context, limit int) ([]models.ArchiveRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	const query = `SELECT id, trigger, size_bytes, created_at FROM snapshot_archive ORDER BY created_at DESC LIMIT $1`
	records := make([]models.ArchiveRecord, 0, limit)
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list snapshot archive rows: %w", err)
	}
	return records, nil
}

// DeleteOlderThan prunes archive rows past the retention window and returns
// how many were removed.
func (r *SnapshotArchiveRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM snapshot_archive WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune snapshot archive: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune snapshot archive: %w", err)
	}
	return affected, nil
}
