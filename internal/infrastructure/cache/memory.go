package cache

import (
	"context"
	"sync"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MemoryProgressStore keeps progress snapshots in process and fans events out
// to local subscribers. Used when Redis is disabled and by the CLI.
type MemoryProgressStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	subs  map[string]map[chan entities.ProgressEvent]struct{}
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	event      entities.ProgressEvent
	expireTime time.Time
}

// NewMemoryProgressStore creates a new in-memory store
func NewMemoryProgressStore(ttl time.Duration) *MemoryProgressStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	store := &MemoryProgressStore{
		items: make(map[string]*memoryItem),
		subs:  make(map[string]map[chan entities.ProgressEvent]struct{}),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired snapshots
	go store.cleanupExpired(5 * time.Minute)

	return store
}

// Publish stores the snapshot and delivers the event to every subscriber of
// the run. Slow subscribers drop events rather than block the pipeline.
func (ms *MemoryProgressStore) Publish(_ context.Context, event entities.ProgressEvent) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[event.RunID] = &memoryItem{
		event:      event,
		expireTime: time.Now().Add(ms.ttl),
	}

	for ch := range ms.subs[event.RunID] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Latest returns the last event published for a run, or nil
func (ms *MemoryProgressStore) Latest(_ context.Context, runID string) (*entities.ProgressEvent, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[runID]
	if !exists || time.Now().After(item.expireTime) {
		return nil, nil
	}
	event := item.event
	return &event, nil
}

// Subscribe returns a channel of future events for a run. The channel is
// closed when ctx is done.
func (ms *MemoryProgressStore) Subscribe(ctx context.Context, runID string) (<-chan entities.ProgressEvent, error) {
	ch := make(chan entities.ProgressEvent, 16)

	ms.mu.Lock()
	if ms.subs[runID] == nil {
		ms.subs[runID] = make(map[chan entities.ProgressEvent]struct{})
	}
	ms.subs[runID][ch] = struct{}{}
	ms.mu.Unlock()

	go func() {
		<-ctx.Done()
		ms.mu.Lock()
		delete(ms.subs[runID], ch)
		if len(ms.subs[runID]) == 0 {
			delete(ms.subs, runID)
		}
		close(ch)
		ms.mu.Unlock()
	}()

	return ch, nil
}

// Delete removes a snapshot
func (ms *MemoryProgressStore) Delete(runID string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, runID)
}

// Close stops the cleanup goroutine
func (ms *MemoryProgressStore) Close() error {
	ms.once.Do(func() { close(ms.stop) })
	return nil
}

// cleanupExpired periodically removes expired snapshots
func (ms *MemoryProgressStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := time.Now()
			for key, item := range ms.items {
				if now.After(item.expireTime) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
