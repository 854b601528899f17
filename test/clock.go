package test

import (
	"sync"

	"quarteto/lib/clock"
)

// FakeClock is a clock that only moves when told to. It is safe for use by
// the handlers of a test server.
type FakeClock struct {
	mu  sync.Mutex
	now int64
}

var _ clock.Clock = &FakeClock{}

func (f *FakeClock) Now() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *FakeClock) Set(now int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance moves the clock forward by secs and returns the new time.
func (f *FakeClock) Advance(secs int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += secs
	return f.now
}
