package clock

import (
	"sync"
	"time"
)

// Manual is a hand-stepped Clock. Time only moves when Advance is called,
// which fires every timer whose deadline has passed.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	waiters []waiter
}

type waiter struct {
	at time.Time
	ch chan time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- m.now
		return ch
	}
	m.waiters = append(m.waiters, waiter{at: m.now.Add(d), ch: ch})
	return ch
}

// Advance moves the clock forward by d and delivers every due timer.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	var due []chan time.Time
	rest := m.waiters[:0]
	for _, w := range m.waiters {
		if w.at.After(now) {
			rest = append(rest, w)
		} else {
			due = append(due, w.ch)
		}
	}
	m.waiters = rest
	m.mu.Unlock()
	for _, ch := range due {
		ch <- now
	}
}

// WaiterCount reports how many timers are armed and not yet fired.
func (m *Manual) WaiterCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiters)
}
