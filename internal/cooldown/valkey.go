package cooldown

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"
)

const valkeyKeyPrefix = "cooldown:"

var _ Store = &ValkeyStore{}

// ValkeyStore keeps one key per command and user. Keys carry the window as TTL,
// so the server drops them once they are no longer live.
type ValkeyStore struct {
	client valkey.Client
}

func NewValkeyStore(client valkey.Client) *ValkeyStore {
	return &ValkeyStore{
		client: client,
	}
}

func valkeyKey(commandID, userID string) string {
	return valkeyKeyPrefix + commandID + ":" + userID
}

func (s *ValkeyStore) Acquire(ctx context.Context, commandID, userID string, now time.Time, window time.Duration) (time.Time, bool, error) {
	key := valkeyKey(commandID, userID)
	value := strconv.FormatInt(now.UnixMilli(), 10)

	setNX := s.client.B().Set().Key(key).Value(value).Nx().PxMilliseconds(window.Milliseconds()).Build()
	err := s.client.Do(ctx, setNX).Error()
	if err == nil {
		return now, true, nil
	}
	if !valkey.IsValkeyNil(err) {
		return time.Time{}, false, fmt.Errorf("set cooldown key: %w", err)
	}

	raw, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if err != nil && !valkey.IsValkeyNil(err) {
		return time.Time{}, false, fmt.Errorf("get cooldown key: %w", err)
	}

	if err == nil {
		lastMillis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("parse cooldown key %s: %w", key, err)
		}

		last := time.UnixMilli(lastMillis)
		if now.Sub(last) < window {
			return last, false, nil
		}
	}

	// The key expired between the two calls, or it holds a timestamp that is no longer live
	set := s.client.B().Set().Key(key).Value(value).PxMilliseconds(window.Milliseconds()).Build()
	if err := s.client.Do(ctx, set).Error(); err != nil {
		return time.Time{}, false, fmt.Errorf("overwrite cooldown key: %w", err)
	}

	return now, true, nil
}

// Sweep is a no-op, the server expires keys on its own
func (s *ValkeyStore) Sweep(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	return 0, nil
}
