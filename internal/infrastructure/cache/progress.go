package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ProgressStore publishes run progress and serves it back to pollers and
// streaming clients
type ProgressStore interface {
	Publish(ctx context.Context, event entities.ProgressEvent) error
	Latest(ctx context.Context, runID string) (*entities.ProgressEvent, error)
	Subscribe(ctx context.Context, runID string) (<-chan entities.ProgressEvent, error)
}

// ProgressChannel is the pub/sub channel carrying events for a run
func ProgressChannel(runID string) string {
	return fmt.Sprintf("progress:%s", runID)
}

// ProgressSnapshotKey holds the last event for a run
func ProgressSnapshotKey(runID string) string {
	return fmt.Sprintf("progress:last:%s", runID)
}

// RedisProgressStore fans progress out through Redis pub/sub so every API
// replica can stream a run it did not start
type RedisProgressStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProgressStore creates a Redis backed store
func NewRedisProgressStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProgressStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisProgressStore{rdb: rdb, ttl: ttl, logger: logger}
}

// Publish writes the snapshot first, then notifies subscribers
func (s *RedisProgressStore) Publish(ctx context.Context, event entities.ProgressEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal progress event: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, ProgressSnapshotKey(event.RunID), payload, s.ttl)
	pipe.Publish(ctx, ProgressChannel(event.RunID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish progress: %w", err)
	}
	return nil
}

// Latest returns the stored snapshot, or nil when none exists
func (s *RedisProgressStore) Latest(ctx context.Context, runID string) (*entities.ProgressEvent, error) {
	raw, err := s.rdb.Get(ctx, ProgressSnapshotKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress snapshot: %w", err)
	}

	var event entities.ProgressEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to decode progress snapshot: %w", err)
	}
	return &event, nil
}

// Subscribe confirms the subscription before returning so that no event
// published after the call is missed
func (s *RedisProgressStore) Subscribe(ctx context.Context, runID string) (<-chan entities.ProgressEvent, error) {
	channel := ProgressChannel(runID)
	pubsub := s.rdb.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan entities.ProgressEvent, 16)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event entities.ProgressEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					if s.logger != nil {
						s.logger.Warn("⚠️ Dropping malformed progress event",
							zap.String("channel", channel),
							zap.Error(err),
						)
					}
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
