package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

var _ ProgressStore = (*MemoryProgressStore)(nil)
var _ ProgressStore = (*RedisProgressStore)(nil)

func TestMemoryProgressStore_LatestAndSubscribe(t *testing.T) {
	store := NewMemoryProgressStore(time.Minute)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	latest, err := store.Latest(ctx, "run-1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	events, err := store.Subscribe(ctx, "run-1")
	require.NoError(t, err)

	event := entities.ProgressEvent{
		RunID:   "run-1",
		Type:    entities.ProgressStage,
		Stage:   entities.StageTranscribing,
		Percent: 40,
	}
	require.NoError(t, store.Publish(ctx, event))
	require.NoError(t, store.Publish(ctx, entities.ProgressEvent{RunID: "run-2", Percent: 20}))

	select {
	case got := <-events:
		assert.Equal(t, event, got)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	latest, err = store.Latest(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 40, latest.Percent)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestMemoryProgressStore_Expiry(t *testing.T) {
	store := NewMemoryProgressStore(10 * time.Millisecond)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Publish(ctx, entities.ProgressEvent{RunID: "r", Percent: 100}))
	time.Sleep(30 * time.Millisecond)

	latest, err := store.Latest(ctx, "r")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestProgressKeys(t *testing.T) {
	assert.Equal(t, "progress:abc", ProgressChannel("abc"))
	assert.Equal(t, "progress:last:abc", ProgressSnapshotKey("abc"))
}
