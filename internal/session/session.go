package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/feprep/internal/question"
)

// Attempt is one run through a question set. All mutation goes through its
// methods; it is not safe for concurrent use.
type Attempt struct {
	// ID is a random UUID identifying this attempt in logs.
	ID string

	mode Mode
	set  *question.Set

	// questions is the set's contents captured at Start.
	questions []question.Question

	answers map[int]question.Answer
	current int
	status  Status

	startedAt   time.Time
	completedAt time.Time

	// onComplete runs once when the attempt completes, whichever call
	// completed it.
	onComplete func()

	now func() time.Time
}

// NewAttempt creates a NotStarted attempt over set. The set is referenced,
// not owned: questions appended before Start are included.
func NewAttempt(set *question.Set, mode Mode) *Attempt {
	return &Attempt{
		ID:      uuid.New().String(),
		mode:    mode,
		set:     set,
		answers: make(map[int]question.Answer),
		now:     time.Now,
	}
}

// Mode returns the attempt's mode.
func (a *Attempt) Mode() Mode { return a.mode }

// Status returns the lifecycle state.
func (a *Attempt) Status() Status { return a.status }

// Set returns the question set the attempt runs over.
func (a *Attempt) Set() *question.Set { return a.set }

// Len returns the number of questions in the attempt.
func (a *Attempt) Len() int {
	if a.status == StatusNotStarted {
		return a.set.Len()
	}
	return len(a.questions)
}

// CurrentIndex returns the 0-based index of the displayed question.
func (a *Attempt) CurrentIndex() int { return a.current }

// IsLast reports whether the current question is the last one.
func (a *Attempt) IsLast() bool { return a.current == len(a.questions)-1 }

// Current returns the displayed question, or nil before Start.
func (a *Attempt) Current() question.Question {
	if a.status == StatusNotStarted || len(a.questions) == 0 {
		return nil
	}
	return a.questions[a.current]
}

// Question returns the question at index i.
func (a *Attempt) Question(i int) question.Question { return a.questions[i] }

// AnswerAt returns the recorded answer for question i and whether one exists.
func (a *Attempt) AnswerAt(i int) (question.Answer, bool) {
	ans, ok := a.answers[i]
	return ans, ok
}

// Answered returns how many questions have a recorded answer, including
// deliberate empty ones.
func (a *Attempt) Answered() int { return len(a.answers) }

// Elapsed returns the time between Start and completion (or now, if running).
func (a *Attempt) Elapsed() time.Duration {
	switch a.status {
	case StatusNotStarted:
		return 0
	case StatusCompleted:
		return a.completedAt.Sub(a.startedAt)
	}
	return a.now().Sub(a.startedAt)
}

// Start moves NotStarted to InProgress and freezes the question list.
func (a *Attempt) Start() error {
	if a.status != StatusNotStarted {
		return ErrAlreadyStarted
	}
	if a.set == nil || a.set.Len() == 0 {
		return ErrEmptyQuestionSet
	}
	a.questions = a.set.Questions()
	a.current = 0
	a.status = StatusInProgress
	a.startedAt = a.now()
	return nil
}

// SubmitAnswer records ans for the current question, replacing any earlier
// answer. Submitting the same answer twice has no further effect.
func (a *Attempt) SubmitAnswer(ans question.Answer) error {
	if a.status != StatusInProgress {
		return ErrNotInProgress
	}
	if ans == nil {
		return fmt.Errorf("%w: nil answer", ErrAnswerKindMismatch)
	}
	q := a.questions[a.current]
	if ans.AnswerKind() != q.Kind() {
		return fmt.Errorf("%w: %s answer for %s question", ErrAnswerKindMismatch, ans.AnswerKind(), q.Kind())
	}
	a.answers[a.current] = ans
	return nil
}

// ClearAnswer removes the answer for the current question, returning it to
// the unanswered state.
func (a *Attempt) ClearAnswer() error {
	if a.status != StatusInProgress {
		return ErrNotInProgress
	}
	delete(a.answers, a.current)
	return nil
}

// Next advances to the following question. On the last question it
// completes the attempt instead.
func (a *Attempt) Next() error {
	if a.status != StatusInProgress {
		return ErrInvalidNavigation
	}
	if a.IsLast() {
		a.complete()
		return nil
	}
	a.current++
	return nil
}

// Previous steps back one question. It is a no-op on the first question.
func (a *Attempt) Previous() error {
	if a.status != StatusInProgress {
		return ErrInvalidNavigation
	}
	if a.current > 0 {
		a.current--
	}
	return nil
}

// Finish completes an InProgress attempt regardless of the current index.
func (a *Attempt) Finish() error {
	if a.status != StatusInProgress {
		return ErrNotInProgress
	}
	a.complete()
	return nil
}

// Retry resets a completed exercise: answers are cleared, the index returns
// to 0 and the same questions are served again.
func (a *Attempt) Retry() error {
	if a.mode == ModeTimedQuiz {
		return ErrRetryNotAllowed
	}
	if a.status != StatusCompleted {
		return ErrAttemptNotCompleted
	}
	a.answers = make(map[int]question.Answer)
	a.current = 0
	a.status = StatusInProgress
	a.startedAt = a.now()
	a.completedAt = time.Time{}
	return nil
}

// Score evaluates every question of a completed attempt. Calling it again
// on the same attempt yields the same summary.
func (a *Attempt) Score() (*Summary, error) {
	if a.status != StatusCompleted {
		return nil, ErrAttemptNotCompleted
	}
	s, err := BuildSummary(a.questions, a.answers, a.mode)
	if err != nil {
		return nil, err
	}
	s.Duration = a.Elapsed()
	return s, nil
}

func (a *Attempt) complete() {
	a.status = StatusCompleted
	a.completedAt = a.now()
	if a.onComplete != nil {
		a.onComplete()
	}
}
