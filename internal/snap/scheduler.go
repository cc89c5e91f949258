package snap

import "time"

// Timer is a cancelable handle to a scheduled callback
type Timer interface {
	// Stop prevents the callback from running; it reports false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs a callback after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules on the runtime timer; callbacks run on their own goroutine
func SystemScheduler() Scheduler {
	return systemScheduler{}
}
