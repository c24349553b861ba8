package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Memory is an in-process Store with per-entry TTL.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clockwork.Clock
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemory(clock clockwork.Clock) *Memory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Memory{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || m.expired(e) {
		// Expired entries are dropped by EvictExpired.
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value for ttl. A non-positive ttl keeps the entry until deleted.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.clock.Now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// EvictExpired removes expired entries and returns how many were removed.
func (m *Memory) EvictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for k, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, k)
			evicted++
		}
	}
	return evicted
}

// StartEviction runs EvictExpired every interval until ctx is done.
func (m *Memory) StartEviction(ctx context.Context, interval time.Duration) {
	ticker := m.clock.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				m.EvictExpired()
			}
		}
	}()
}

func (m *Memory) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt)
}
