package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func newArchiveRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSnapshotArchiveCreateAndGet(t *testing.T) {
	db, mock, cleanup := newArchiveRepoMock(t)
	defer cleanup()

	repo := NewSnapshotArchiveRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO snapshot_archive")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.ArchiveRecord{
		Trigger: "manual",
		Payload: []byte(`{"allUsers":{}}`),
	}
	require.NoError(t, repo.Create(context.Background(), record))
	require.NotEmpty(t, record.ID)
	require.Equal(t, len(record.Payload), record.SizeBytes)

	rows := sqlmock.NewRows([]string{"id", "trigger", "payload", "size_bytes", "created_at"}).
		AddRow(record.ID, record.Trigger, record.Payload, record.SizeBytes, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, trigger, payload, size_bytes, created_at FROM snapshot_archive")).
		WithArgs(record.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.Equal(t, record.Payload, found.Payload)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotArchiveGetUnknownID(t *testing.T) {
	db, mock, cleanup := newArchiveRepoMock(t)
	defer cleanup()

	repo := NewSnapshotArchiveRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, trigger, payload, size_bytes, created_at FROM snapshot_archive")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "trigger", "payload", "size_bytes", "created_at"}))

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotArchiveList(t *testing.T) {
	db, mock, cleanup := newArchiveRepoMock(t)
	defer cleanup()

	repo := NewSnapshotArchiveRepository(db)
	rows := sqlmock.NewRows([]string{"id", "trigger", "size_bytes", "created_at"}).
		AddRow("arc-2", "auto", 2048, time.Now()).
		AddRow("arc-1", "manual", 1024, time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, trigger, size_bytes, created_at FROM snapshot_archive")).
		WithArgs(100).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "arc-2", records[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotArchiveDeleteOlderThan(t *testing.T) {
	db, mock, cleanup := newArchiveRepoMock(t)
	defer cleanup()

	repo := NewSnapshotArchiveRepository(db)
	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM snapshot_archive")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	require.EqualValues(t, 3, pruned)
	require.NoError(t, mock.ExpectationsWereMet())
}
