package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// MemoryBackend keeps entries in process memory. Expired entries are dropped lazily on
// read and periodically by StartJanitor.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	e, ok := b.entries[key]
	b.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if e.expired(b.now()) {
		b.mu.Lock()
		if current, ok := b.entries[key]; ok && current.expired(b.now()) {
			delete(b.entries, key)
		}
		b.mu.Unlock()
		return nil, ErrMiss
	}

	return append([]byte(nil), e.value...), nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = b.now().Add(ttl)
	}

	b.mu.Lock()
	b.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: expiresAt,
	}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Exists(_ context.Context, key string) (bool, error) {
	b.mu.RLock()
	e, ok := b.entries[key]
	b.mu.RUnlock()
	return ok && !e.expired(b.now()), nil
}

func (b *MemoryBackend) FlushAll(context.Context) error {
	b.mu.Lock()
	b.entries = make(map[string]memoryEntry)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// Len counts live entries.
func (b *MemoryBackend) Len() int {
	now := b.now()
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, e := range b.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// StartJanitor sweeps expired entries every interval until ctx is done.
func (b *MemoryBackend) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.sweep()
			}
		}
	}()
}

func (b *MemoryBackend) sweep() {
	now := b.now()
	b.mu.Lock()
	for key, e := range b.entries {
		if e.expired(now) {
			delete(b.entries, key)
		}
	}
	b.mu.Unlock()
}
