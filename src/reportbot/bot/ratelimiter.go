package bot

import (
	"sync"
	"time"
)

// RateLimiter throttles command use per sender. Entries are kept in memory
// only; a restart clears them.
type RateLimiter struct {
	users map[string]time.Time
	mu    sync.Mutex
	limit time.Duration
}

func NewRateLimiter(limit time.Duration) *RateLimiter {
	return &RateLimiter{
		users: make(map[string]time.Time),
		limit: limit,
	}
}

// CanUse reports whether the key may run a command now and, if so, records
// the use.
func (rl *RateLimiter) CanUse(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.users[key]
	if !exists || time.Since(lastUse) >= rl.limit {
		rl.users[key] = time.Now()
		return true
	}
	return false
}

// TimeUntilNext returns how long the key must wait before the next use.
func (rl *RateLimiter) TimeUntilNext(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.users[key]
	if !exists {
		return 0
	}

	elapsed := time.Since(lastUse)
	if elapsed >= rl.limit {
		return 0
	}
	return rl.limit - elapsed
}

// Cleanup drops entries old enough to be irrelevant.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, lastUse := range rl.users {
		if now.Sub(lastUse) > rl.limit*2 {
			delete(rl.users, key)
		}
	}
}

// StartCleanup runs Cleanup on an interval until the stop channel closes.
func (rl *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
