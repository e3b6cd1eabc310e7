package cooldown

import (
	"context"
	"sync"
	"time"
)

// Store holds the last accepted invocation per command and user
type Store interface {
	// Acquire records now for the given pair unless a live entry exists.
	// If a live entry exists, its timestamp is returned and acquired is false.
	Acquire(ctx context.Context, commandID, userID string, now time.Time, window time.Duration) (last time.Time, acquired bool, err error)

	// Sweep removes entries that are no longer live at now and returns how many were removed
	Sweep(ctx context.Context, now time.Time, window time.Duration) (int, error)
}

var _ Store = &MemoryStore{}

// MemoryStore keeps the timestamp table in process memory
type MemoryStore struct {
	mutex sync.Mutex
	data  map[string]map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string]map[string]time.Time{},
	}
}

func (s *MemoryStore) Acquire(ctx context.Context, commandID, userID string, now time.Time, window time.Duration) (time.Time, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	timestamps, ok := s.data[commandID]
	if !ok {
		timestamps = map[string]time.Time{}
		s.data[commandID] = timestamps
	}

	if last, ok := timestamps[userID]; ok && now.Sub(last) < window {
		return last, false, nil
	}

	timestamps[userID] = now

	return now, true, nil
}

func (s *MemoryStore) Sweep(ctx context.Context, now time.Time, window time.Duration) (removed int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for commandID, timestamps := range s.data {
		for userID, last := range timestamps {
			if now.Sub(last) >= window {
				delete(timestamps, userID)
				removed++
			}
		}

		if len(timestamps) == 0 {
			delete(s.data, commandID)
		}
	}

	return
}

// Len returns the number of stored entries, live or not
func (s *MemoryStore) Len() (n int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, timestamps := range s.data {
		n += len(timestamps)
	}

	return
}
