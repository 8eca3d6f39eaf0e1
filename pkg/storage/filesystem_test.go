package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveReadDelete(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save("backup.json", []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, "backup.json", name)

	data, err := s.Read("backup.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	require.NoError(t, s.Delete("backup.json"))
	_, err = s.Read("backup.json")
	assert.Error(t, err)

	// deleting a missing file is not an error
	assert.NoError(t, s.Delete("backup.json"))
}

func TestLocalStorageSaveStreamAndOpen(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.SaveStream("nested/backup.json", strings.NewReader("streamed"))
	require.NoError(t, err)

	file, err := s.Open("nested/backup.json")
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	fi, err := file.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(len("streamed")), fi.Size())
}

func TestLocalStorageListAndCleanup(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("old.json", []byte("old"))
	require.NoError(t, err)
	_, err = s.Save("new.json", []byte("new"))
	require.NoError(t, err)

	names, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"old.json", "new.json"}, names)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(s.Path("old.json"), old, old))

	deleted, err := s.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.json"}, deleted)

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"new.json"}, names)
}
