package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get(storage.KeyUsername)
	assert.False(t, ok)

	require.NoError(t, s.Set(storage.KeyUsername, "alice"))

	got, ok := s.Get(storage.KeyUsername)
	require.True(t, ok)
	assert.Equal(t, "alice", got)

	require.NoError(t, s.Remove(storage.KeyUsername))

	_, ok = s.Get(storage.KeyUsername)
	assert.False(t, ok)
}

func TestFileStore_RemoveMissingKey(t *testing.T) {
	s, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Remove("never-set"))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(storage.KeyInvoices, `[{"id":"inv-1"}]`))
	require.NoError(t, s.Close())

	reopened, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Get(storage.KeyInvoices)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"inv-1"}]`, got)
}

func TestFileStore_NotifiesOtherContext(t *testing.T) {
	dir := t.TempDir()

	writer, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer writer.Close()

	reader, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer reader.Close()

	events := reader.Subscribe()

	require.NoError(t, writer.Set(storage.KeyAuthenticated, "true"))

	select {
	case ev := <-events:
		assert.Equal(t, storage.KeyAuthenticated, ev.Key)
		assert.Equal(t, "true", ev.Value)
		assert.False(t, ev.Removed)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for write from other context")
	}
}

func TestFileStore_NotifiesRemoval(t *testing.T) {
	dir := t.TempDir()

	writer, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.Set(storage.KeyAuthenticated, "true"))

	reader, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer reader.Close()

	events := reader.Subscribe()

	require.NoError(t, writer.Remove(storage.KeyAuthenticated))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Key == storage.KeyAuthenticated && ev.Removed {
				return
			}
		case <-deadline:
			t.Fatal("no removal event for delete from other context")
		}
	}
}

func TestFileStore_SuppressesOwnWrites(t *testing.T) {
	s, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	events := s.Subscribe()

	require.NoError(t, s.Set(storage.KeyUsername, "alice"))

	select {
	case ev := <-events:
		t.Fatalf("writer was notified of its own write: %+v", ev)
	case <-time.After(500 * time.Millisecond):
	}
}
