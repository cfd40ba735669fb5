package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManager_BeginCommit(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.Begin("t1", "stage1.needs", "current text"))
	require.True(t, m.IsEditing("t1", "stage1.needs"))
	require.False(t, m.IsEditing("t1", "stage3.pcap"))
	require.False(t, m.IsEditing("t2", "stage1.needs"))

	require.NoError(t, m.SetBuffer("t1", "stage1.needs", "reworked text"))

	content, err := m.Commit("t1", "stage1.needs")
	require.NoError(t, err)
	require.Equal(t, "reworked text", content)
	require.False(t, m.IsEditing("t1", "stage1.needs"))
}

func TestManager_CommitWithoutBufferChangeReturnsSeed(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Begin("t1", "stage1.needs", "seed"))

	content, err := m.Commit("t1", "stage1.needs")
	require.NoError(t, err)
	require.Equal(t, "seed", content)
}

func TestManager_CancelDiscardsBuffer(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Begin("t1", "stage1.needs", "seed"))
	require.NoError(t, m.SetBuffer("t1", "stage1.needs", "typed a lot"))

	require.NoError(t, m.Cancel("t1", "stage1.needs"))
	require.False(t, m.IsEditing("t1", "stage1.needs"))

	_, err := m.Commit("t1", "stage1.needs")
	require.ErrorIs(t, err, ErrNotEditing)
}

func TestManager_DoubleBeginRejected(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Begin("t1", "stage1.needs", ""))
	require.ErrorIs(t, m.Begin("t1", "stage1.needs", ""), ErrAlreadyEditing)
}

func TestManager_OperationsWithoutSession(t *testing.T) {
	m := NewManager()

	require.ErrorIs(t, m.SetBuffer("t1", "f", "x"), ErrNotEditing)
	require.ErrorIs(t, m.Cancel("t1", "f"), ErrNotEditing)
	_, err := m.Commit("t1", "f")
	require.ErrorIs(t, err, ErrNotEditing)
}

func TestManager_DropTender(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Begin("t1", "a", ""))
	require.NoError(t, m.Begin("t1", "b", ""))
	require.NoError(t, m.Begin("t2", "a", ""))

	m.DropTender("t1")

	require.False(t, m.IsEditing("t1", "a"))
	require.False(t, m.IsEditing("t1", "b"))
	require.True(t, m.IsEditing("t2", "a"))
}
