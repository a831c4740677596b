package session

import (
	"time"

	"github.com/abhisek/feprep/internal/question"
)

// Band is the qualitative performance category for a percentage score.
type Band string

const (
	BandExcellent     Band = "excellent"
	BandGood          Band = "good"
	BandNeedsPractice Band = "needs practice"
)

// BandFor maps a percentage to its band: [80,100] excellent, [60,80) good,
// below 60 needs practice.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	}
	return BandNeedsPractice
}

// Message returns the feedback line shown for the band in the given mode.
func (b Band) Message(mode Mode) string {
	if mode == ModeTimedQuiz {
		switch b {
		case BandExcellent:
			return "Excellent! Keep practicing to master this topic."
		case BandGood:
			return "Good effort! Review the incorrect questions."
		}
		return "Keep studying! Try again to improve your score."
	}
	switch b {
	case BandExcellent:
		return "Excellent! You have mastered this topic."
	case BandGood:
		return "Good work! Review the incorrect answers."
	}
	return "Keep practicing! Try the exercise again."
}

// Percentage returns round(100*correct/total) with halves rounded up.
// total must be positive.
func Percentage(correct, total int) int {
	return (200*correct + total) / (2 * total)
}

// QuestionResult is the verdict for one question, kept for review.
type QuestionResult struct {
	Index    int
	Question question.Question

	// Answer is nil when Answered is false.
	Answer   question.Answer
	Answered bool
	Correct  bool
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Mode       Mode
	Correct    int
	Total      int
	Answered   int
	Percentage int
	Band       Band
	Duration   time.Duration
	Results    []QuestionResult
}

// Message returns the band feedback for the summary's mode.
func (s *Summary) Message() string { return s.Band.Message(s.Mode) }

// BuildSummary scores questions against answers keyed by question index.
// Unanswered questions count toward Total but never toward Correct.
func BuildSummary(questions []question.Question, answers map[int]question.Answer, mode Mode) (*Summary, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	s := &Summary{
		Mode:    mode,
		Total:   len(questions),
		Results: make([]QuestionResult, len(questions)),
	}
	for i, q := range questions {
		ans, answered := answers[i]
		correct := answered && question.Evaluate(q, ans)
		s.Results[i] = QuestionResult{
			Index:    i,
			Question: q,
			Answer:   ans,
			Answered: answered,
			Correct:  correct,
		}
		if answered {
			s.Answered++
		}
		if correct {
			s.Correct++
		}
	}
	s.Percentage = Percentage(s.Correct, s.Total)
	s.Band = BandFor(s.Percentage)
	return s, nil
}
