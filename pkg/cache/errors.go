package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

const pingAttempts = 3

// retryDelay is the first backoff step; it doubles after each attempt.
var retryDelay = 200 * time.Millisecond

// transient reports whether a failed PING may succeed if repeated. Network
// errors and a server still loading its dataset qualify; authentication
// and protocol errors do not.
func transient(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, io.EOF) {
		return true
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "LOADING") || strings.HasPrefix(msg, "BUSY")
}

// pingWithBackoff calls ping until it succeeds, fails permanently or
// pingAttempts calls have been made. Failures wrap [ErrUnavailable].
func pingWithBackoff(ctx context.Context, addr string, ping func(context.Context) error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := ping(ctx)
		if err == nil {
			return nil
		}
		if attempt == pingAttempts || !transient(err) {
			return fmt.Errorf("%w: ping %s (attempt %d): %v", ErrUnavailable, addr, attempt, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
