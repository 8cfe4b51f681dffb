package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("test") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	rl.Allow("key1")
	if rl.Allow("key1") {
		t.Error("key1 should be exhausted")
	}

	if !rl.Allow("key2") {
		t.Error("key2 should be independent and allowed")
	}
}

func TestKeyedRateLimiter_Refills(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("k") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("k") {
		t.Fatal("second request in the same instant should be limited")
	}

	now = now.Add(time.Second)
	if !rl.Allow("k") {
		t.Error("a token should be available after one second")
	}
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	rl := NewWithTTL(1, 1, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(50 * time.Second)
	rl.Allow("recent")

	now = now.Add(30 * time.Second)
	rl.evictIdle()

	if got := rl.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	// The evicted key starts over with a full bucket.
	if !rl.Allow("old") {
		t.Error("evicted key should be allowed again")
	}
}

func TestKeyedRateLimiter_Concurrent(t *testing.T) {
	rl := New(1, 10)
	defer rl.Stop()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		passed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if passed > 11 {
		t.Errorf("passed %d requests, want at most burst plus refill", passed)
	}
}

func TestKeyedRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	rl.Stop()
}

func TestNewWithTTL_NonPositiveUsesDefault(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		rl := NewWithTTL(1, 1, ttl)
		if rl.idleTTL != DefaultIdleTTL {
			t.Errorf("NewWithTTL(%v): idleTTL = %v, want %v", ttl, rl.idleTTL, DefaultIdleTTL)
		}
		if !rl.Allow("a") {
			t.Errorf("NewWithTTL(%v): first request denied", ttl)
		}
		// Give the cleanup goroutine time to start its ticker.
		time.Sleep(10 * time.Millisecond)
		rl.Stop()
	}
}

func TestNewWithTTL_TinyTTL(t *testing.T) {
	rl := NewWithTTL(1, 1, time.Nanosecond)
	defer rl.Stop()

	if !rl.Allow("a") {
		t.Error("first request denied")
	}
	time.Sleep(10 * time.Millisecond)
}
