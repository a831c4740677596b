package question

import (
	"errors"
	"fmt"

	"github.com/abhisek/feprep/internal/catalog"
)

// ErrSetClosed is returned when appending to a set whose session is gone.
var ErrSetClosed = errors.New("question set is closed")

// Set is the ordered, append-only question list for one subtopic.
// IDs are assigned on append and are never reused within the set.
// A Set is not safe for concurrent use.
type Set struct {
	topic     catalog.Topic
	questions []Question
	nextID    int
	closed    bool
}

// NewSet creates an empty set for the given topic.
func NewSet(topic catalog.Topic) *Set {
	return &Set{topic: topic, nextID: 1}
}

// Topic returns the (category, subtopic) pair the set belongs to.
func (s *Set) Topic() catalog.Topic { return s.topic }

// Len returns the number of questions in the set.
func (s *Set) Len() int { return len(s.questions) }

// At returns the question at index i.
func (s *Set) At(i int) Question { return s.questions[i] }

// Questions returns a copy of the question list. Later appends to the set
// do not change the returned slice.
func (s *Set) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Append validates q, assigns it the next ID and adds it to the end of the
// set. The question must not already belong to a set.
func (s *Set) Append(q Question) (int, error) {
	if s.closed {
		return 0, ErrSetClosed
	}
	if q == nil {
		return 0, fmt.Errorf("%w: nil question", ErrInvalidQuestion)
	}
	if err := q.Validate(); err != nil {
		return 0, err
	}
	b := q.Common()
	if b.ID != 0 {
		return 0, fmt.Errorf("question already has id %d", b.ID)
	}
	b.ID = s.nextID
	s.nextID++
	s.questions = append(s.questions, q)
	return b.ID, nil
}

// Close marks the set as discarded. Subsequent appends fail with
// ErrSetClosed; questions already in the set stay readable.
func (s *Set) Close() { s.closed = true }

// Closed reports whether Close has been called.
func (s *Set) Closed() bool { return s.closed }

// SeededSet returns a new set for topic holding its built-in questions.
// Topics without seeds yield an empty set.
func SeededSet(topic catalog.Topic) (*Set, error) {
	s := NewSet(topic)
	for _, seed := range catalog.Seeds(topic) {
		kind, err := ParseKind(seed.Kind)
		if err != nil {
			return nil, fmt.Errorf("seed for %s: %w", topic.Key(), err)
		}
		q, err := Decode(kind, []byte(seed.Payload))
		if err != nil {
			return nil, fmt.Errorf("seed for %s: %w", topic.Key(), err)
		}
		if _, err := s.Append(q); err != nil {
			return nil, err
		}
	}
	return s, nil
}
