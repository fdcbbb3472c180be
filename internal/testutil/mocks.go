package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"codeberg.org/snonux/martian/internal/session"
)

// MockClipboard records clipboard writes
type MockClipboard struct {
	mu    sync.Mutex
	Err   error
	Calls []string
}

// Write implements clipboard.Writer
func (m *MockClipboard) Write(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, text)
	return m.Err
}

// Last returns the most recent write, or "" if there was none
func (m *MockClipboard) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	return m.Calls[len(m.Calls)-1]
}

// FakeClock is a manually advanced session.Clock
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*FakeTimer
}

// FakeTimer is a timer scheduled on a FakeClock
type FakeTimer struct {
	clock   *FakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewFakeClock creates a clock at time zero
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc implements session.Clock
func (c *FakeClock) AfterFunc(d time.Duration, f func()) session.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed fake time
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of timers that have neither fired nor stopped
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves time forward and fires due timers in deadline order.
// Callbacks run on the caller's goroutine.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	now := c.now
	var due []*FakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Stop implements session.Timer
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// String describes the timer for test failure messages
func (t *FakeTimer) String() string {
	return fmt.Sprintf("timer(at=%s stopped=%v fired=%v)", t.at, t.stopped, t.fired)
}
