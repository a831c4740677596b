package session

import "fmt"

// Countdown is a cooperative timer. It never schedules anything itself: the
// owner calls Tick once per elapsed second. After expiry or Cancel, Tick is
// a no-op, so a late tick from a driver cannot change state.
type Countdown struct {
	limit     int
	remaining int
	status    TimerStatus
	onExpire  func()
}

// NewCountdown returns an idle countdown that calls onExpire exactly once
// when it reaches zero.
func NewCountdown(onExpire func()) *Countdown {
	return &Countdown{onExpire: onExpire}
}

// Arm starts the countdown from seconds.
func (c *Countdown) Arm(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: %d seconds", ErrInvalidTimeLimit, seconds)
	}
	if c.status != TimerIdle {
		return ErrAlreadyStarted
	}
	c.limit = seconds
	c.remaining = seconds
	c.status = TimerRunning
	return nil
}

// Tick decrements the remaining time by one second. It reports whether a
// decrement happened.
func (c *Countdown) Tick() bool {
	if c.status != TimerRunning {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.status = TimerExpired
		if c.onExpire != nil {
			c.onExpire()
		}
	}
	return true
}

// Cancel stops the countdown. An expired countdown stays expired.
func (c *Countdown) Cancel() {
	if c.status == TimerIdle || c.status == TimerRunning {
		c.status = TimerStopped
	}
}

// Status returns the timer state.
func (c *Countdown) Status() TimerStatus { return c.status }

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Limit returns the armed time limit in seconds.
func (c *Countdown) Limit() int { return c.limit }

// FormatClock renders seconds as "m:ss".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
