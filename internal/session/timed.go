package session

import (
	"fmt"
	"slices"

	"github.com/abhisek/feprep/internal/question"
)

// TimeLimits is the menu of quiz lengths in seconds.
var TimeLimits = []int{180, 300, 600}

// DefaultTimeLimit is the preselected quiz length.
const DefaultTimeLimit = 300

// ValidTimeLimit reports whether seconds is on the menu.
func ValidTimeLimit(seconds int) bool {
	return slices.Contains(TimeLimits, seconds)
}

// TimedSession is an Attempt in timed-quiz mode with an owned countdown.
// While the timer runs the attempt is InProgress: expiry completes the
// attempt, and completing the attempt by any other route stops the timer.
type TimedSession struct {
	*Attempt

	limit int
	timer *Countdown
}

// NewTimedSession creates a timed quiz over set with a limit from TimeLimits.
func NewTimedSession(set *question.Set, limitSeconds int) (*TimedSession, error) {
	if !ValidTimeLimit(limitSeconds) {
		return nil, fmt.Errorf("%w: %d seconds (allowed %v)", ErrInvalidTimeLimit, limitSeconds, TimeLimits)
	}
	ts := &TimedSession{
		Attempt: NewAttempt(set, ModeTimedQuiz),
		limit:   limitSeconds,
	}
	ts.timer = NewCountdown(func() {
		if ts.Attempt.Status() == StatusInProgress {
			ts.Attempt.complete()
		}
	})
	ts.Attempt.onComplete = ts.timer.Cancel
	return ts, nil
}

// Start begins the attempt and arms the countdown.
func (ts *TimedSession) Start() error {
	if err := ts.Attempt.Start(); err != nil {
		return err
	}
	return ts.timer.Arm(ts.limit)
}

// Tick advances the countdown by one second. It reports whether the tick
// had an effect; ticks after completion or Close do nothing.
func (ts *TimedSession) Tick() bool {
	if ts.Attempt.Status() != StatusInProgress {
		ts.timer.Cancel()
		return false
	}
	return ts.timer.Tick()
}

// Close discards the session. The countdown is cancelled so pending ticks
// are ignored. Close is safe to call more than once.
func (ts *TimedSession) Close() { ts.timer.Cancel() }

// TimeLimit returns the configured limit in seconds.
func (ts *TimedSession) TimeLimit() int { return ts.limit }

// Remaining returns the seconds left. Before Start it is the full limit.
func (ts *TimedSession) Remaining() int {
	if ts.timer.Status() == TimerIdle {
		return ts.limit
	}
	return ts.timer.Remaining()
}

// TimerStatus returns the countdown state.
func (ts *TimedSession) TimerStatus() TimerStatus { return ts.timer.Status() }

// FormatRemaining renders the remaining time as "m:ss".
func (ts *TimedSession) FormatRemaining() string { return FormatClock(ts.Remaining()) }
