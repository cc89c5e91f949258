package snap

import (
	"sync"
	"time"
)

// Lock is a timed exclusive lock: Acquire takes it and schedules its own release.
type Lock struct {
	mu      sync.Mutex
	sched   Scheduler
	held    bool
	gen     uint64
	release Timer
}

// NewLock creates an unheld lock using sched for the release timer
func NewLock(sched Scheduler) *Lock {
	if sched == nil {
		sched = SystemScheduler()
	}
	return &Lock{sched: sched}
}

// Acquire takes the lock for d. It returns false if the lock is already held.
// The returned handle cancels the scheduled release; the lock then stays held until Release.
func (l *Lock) Acquire(d time.Duration) (Timer, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held {
		return nil, false
	}
	l.held = true
	l.gen++
	gen := l.gen
	l.release = l.sched.AfterFunc(d, func() { l.releaseGen(gen) })
	return l.release, true
}

// Release frees the lock immediately and cancels a pending scheduled release
func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.release != nil {
		l.release.Stop()
		l.release = nil
	}
	l.held = false
}

// Held reports whether the lock is currently taken
func (l *Lock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

// releaseGen ignores releases scheduled by an earlier Acquire
func (l *Lock) releaseGen(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen != gen {
		return
	}
	l.held = false
	l.release = nil
}
