// Package snaptest provides a deterministic scheduler for driving controller timers in tests.
package snaptest

import (
	"sort"
	"sync"
	"time"

	"snapdeck/internal/snap"
)

// Scheduler is a manual clock. Timers fire only from Advance, on the caller's goroutine.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*timer
}

type timer struct {
	s       *Scheduler
	at      time.Duration
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// NewScheduler returns a scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc schedules f to run once the clock has advanced by d
func (s *Scheduler) AfterFunc(d time.Duration, f func()) snap.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, firing due timers in deadline order
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		next := s.nextDueLocked(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()
		next.f()
		s.mu.Lock()
	}
	s.now = target
	s.compactLocked()
	s.mu.Unlock()
}

// Now returns the time elapsed since the scheduler was created
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns how many timers are still waiting to fire
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDueLocked(target time.Duration) *timer {
	var due []*timer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *Scheduler) compactLocked() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}
