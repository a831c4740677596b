package session

import "errors"

var (
	// ErrEmptyQuestionSet blocks starting an attempt with no questions.
	ErrEmptyQuestionSet = errors.New("no exercises available")

	// ErrAttemptNotCompleted is returned when scoring an unfinished attempt.
	ErrAttemptNotCompleted = errors.New("attempt not completed")

	// ErrInvalidNavigation is returned by Next and Previous outside InProgress.
	ErrInvalidNavigation = errors.New("navigation not allowed in current state")

	// ErrNotInProgress is returned by mutations that require an InProgress attempt.
	ErrNotInProgress = errors.New("attempt not in progress")

	// ErrRetryNotAllowed is returned when retrying a timed quiz.
	ErrRetryNotAllowed = errors.New("retry not allowed in timed quiz mode")

	// ErrInvalidTimeLimit is returned for a time limit outside the menu.
	ErrInvalidTimeLimit = errors.New("invalid time limit")

	// ErrAlreadyStarted is returned when starting an attempt or timer twice.
	ErrAlreadyStarted = errors.New("already started")

	// ErrAnswerKindMismatch is returned when an answer does not fit the current question.
	ErrAnswerKindMismatch = errors.New("answer does not match question kind")
)

// Status is the lifecycle state of an Attempt.
type Status int

const (
	StatusNotStarted Status = iota // Created, waiting for Start
	StatusInProgress               // Accepting answers and navigation
	StatusCompleted                // Final; only Retry (exercise mode) leaves it
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// Mode is how the learner works through a question set.
type Mode int

const (
	ModeExercise  Mode = iota // Untimed, retry allowed
	ModeTimedQuiz             // Countdown, final once completed
)

func (m Mode) String() string {
	if m == ModeTimedQuiz {
		return "quiz"
	}
	return "exercise"
}

// TimerStatus is the state of a Countdown.
type TimerStatus int

const (
	TimerIdle    TimerStatus = iota // Not armed yet
	TimerRunning                    // Decrementing once per tick
	TimerExpired                    // Reached zero and forced completion
	TimerStopped                    // Cancelled before reaching zero
)

func (s TimerStatus) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerExpired:
		return "expired"
	case TimerStopped:
		return "stopped"
	}
	return "unknown"
}
