package quiz

import (
	"sync"
	"time"
)

// Timer is a once-per-second countdown owned by exactly one session. When
// it reaches zero it stops itself and invokes the expiry callback exactly
// once. Stop is safe to call any number of times and must be called on
// every path out of InProgress so no stale tick can fire against a
// replaced session.
type Timer struct {
	mu        sync.Mutex
	remaining int
	stopped   bool
	stop      chan struct{}
	done      chan struct{}
}

func newTimer(seconds int, onExpire func()) *Timer {
	return newTimerWithInterval(seconds, time.Second, onExpire)
}

// newTimerWithInterval exists so tests can tick faster than wall-clock.
func newTimerWithInterval(seconds int, interval time.Duration, onExpire func()) *Timer {
	t := &Timer{
		remaining: seconds,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go t.run(interval, onExpire)
	return t
}

func (t *Timer) run(interval time.Duration, onExpire func()) {
	defer close(t.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.stopped {
				t.mu.Unlock()
				return
			}
			t.remaining--
			expired := t.remaining <= 0
			if expired {
				t.remaining = 0
				t.stopped = true
			}
			t.mu.Unlock()

			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop cancels the countdown. Idempotent; a timer that already expired or
// was already stopped is left alone.
func (t *Timer) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()
	close(t.stop)
}

// Remaining returns the seconds left on the countdown.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// wait blocks until the timer goroutine has exited. Test helper.
func (t *Timer) wait() {
	<-t.done
}
