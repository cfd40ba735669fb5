package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s := NewStore(path)

	id, err := s.ActiveTenderId()
	require.NoError(t, err)
	require.Equal(t, "", id)

	require.NoError(t, s.SetActiveTenderId("abc-123"))

	id, err = s.ActiveTenderId()
	require.NoError(t, err)
	require.Equal(t, "abc-123", id)

	// a fresh store over the same file sees the persisted value
	id, err = NewStore(path).ActiveTenderId()
	require.NoError(t, err)
	require.Equal(t, "abc-123", id)
}

func TestStore_ClearActiveTender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s := NewStore(path)

	require.NoError(t, s.SetActiveTenderId("abc-123"))
	require.NoError(t, s.SetActiveTenderId(""))

	id, err := s.ActiveTenderId()
	require.NoError(t, err)
	require.Equal(t, "", id)
}

func TestStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	id, err := NewStore(path).ActiveTenderId()
	require.NoError(t, err)
	require.Equal(t, "", id)
}
