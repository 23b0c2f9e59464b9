package interact

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphsketch/pkg/graph"
)

// DefaultDwell is how long a node must be held before a press becomes a
// drag.
const DefaultDwell = 100 * time.Millisecond

// Option configures a [Controller].
type Option func(*Controller)

// WithClock sets the clock used for the dwell timer. Default: [RealClock].
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithDwell sets the dwell threshold. Non-positive values are ignored.
func WithDwell(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.dwell = d
		}
	}
}

// WithLogger sets the logger. Rejected edits are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// WithSnapshot starts the controller on s instead of an empty graph.
func WithSnapshot(s *graph.Snapshot) Option {
	return func(ctl *Controller) {
		if s != nil {
			ctl.g = s
		}
	}
}

// WithOnChange registers f to run after every change made by the dwell
// timer, which happens outside of any caller's method call. f runs without
// the controller's lock held.
func WithOnChange(f func()) Option {
	return func(ctl *Controller) { ctl.onChange = f }
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
