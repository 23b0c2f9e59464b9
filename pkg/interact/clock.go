package interact

import "time"

// Timer is a pending callback created by a [Clock].
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it ran.
	Stop() bool
}

// Clock schedules callbacks. [RealClock] uses the runtime timers; hosts
// that own an event loop can route the callback through it instead.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules with [time.AfterFunc]. Callbacks run on their own
// goroutine.
type RealClock struct{}

// AfterFunc implements [Clock].
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
