package question

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidQuestion is matched by every validation failure.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrUnknownKind indicates a kind name outside the supported set.
	ErrUnknownKind = errors.New("unknown question kind")
)

const (
	minOptions = 2
	maxOptions = 6
	minSlots   = 2
	maxSlots   = 6
)

// ValidationError describes why a question payload was rejected.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s question: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidQuestion }

func invalid(k Kind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: k, Field: field, Message: fmt.Sprintf(format, args...)}
}

func validateText(k Kind, b *Base) error {
	if strings.TrimSpace(b.Text) == "" {
		return invalid(k, "text", "is empty")
	}
	return nil
}

func (q *MultipleChoice) Validate() error {
	if err := validateText(q.Kind(), &q.Base); err != nil {
		return err
	}
	if n := len(q.Options); n < minOptions || n > maxOptions {
		return invalid(q.Kind(), "options", "need %d-%d options, got %d", minOptions, maxOptions, n)
	}
	if len(q.CorrectAnswers) == 0 {
		return invalid(q.Kind(), "correctAnswers", "is empty")
	}
	seen := make(map[int]bool, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= len(q.Options) {
			return invalid(q.Kind(), "correctAnswers", "index %d out of range [0,%d)", idx, len(q.Options))
		}
		if seen[idx] {
			return invalid(q.Kind(), "correctAnswers", "index %d listed twice", idx)
		}
		seen[idx] = true
	}
	return nil
}

func (q *FillInBlank) Validate() error {
	if err := validateText(q.Kind(), &q.Base); err != nil {
		return err
	}
	if len(q.CorrectAnswers) == 0 {
		return invalid(q.Kind(), "correctAnswers", "is empty")
	}
	for i, a := range q.CorrectAnswers {
		if strings.TrimSpace(a) == "" {
			return invalid(q.Kind(), "correctAnswers", "variant %d is blank", i)
		}
	}
	return nil
}

func (q *PointAndClick) Validate() error {
	if err := validateText(q.Kind(), &q.Base); err != nil {
		return err
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return invalid(q.Kind(), "correctAnswer", "is empty")
	}
	if !slices.Contains(HotspotLabels, q.CorrectAnswer) {
		return invalid(q.Kind(), "correctAnswer", "%q is not one of %s", q.CorrectAnswer, strings.Join(HotspotLabels, ", "))
	}
	return nil
}

func (q *DragAndDrop) Validate() error {
	if err := validateText(q.Kind(), &q.Base); err != nil {
		return err
	}
	items, err := slotIDs(q.Kind(), "items", q.Items)
	if err != nil {
		return err
	}
	zones, err := slotIDs(q.Kind(), "dropzones", q.Dropzones)
	if err != nil {
		return err
	}
	if len(q.CorrectMatches) == 0 {
		return invalid(q.Kind(), "correctMatches", "is empty")
	}
	used := make(map[string]string, len(q.CorrectMatches))
	for zone, item := range q.CorrectMatches {
		if !zones[zone] {
			return invalid(q.Kind(), "correctMatches", "unknown dropzone %q", zone)
		}
		if !items[item] {
			return invalid(q.Kind(), "correctMatches", "unknown item %q", item)
		}
		if other, dup := used[item]; dup {
			return invalid(q.Kind(), "correctMatches", "item %q matched to both %q and %q", item, other, zone)
		}
		used[item] = zone
	}
	return nil
}

// slotIDs checks count limits and ID uniqueness and returns the ID set.
func slotIDs(k Kind, field string, slots []Slot) (map[string]bool, error) {
	if n := len(slots); n < minSlots || n > maxSlots {
		return nil, invalid(k, field, "need %d-%d entries, got %d", minSlots, maxSlots, n)
	}
	ids := make(map[string]bool, len(slots))
	for _, s := range slots {
		if s.ID == "" {
			return nil, invalid(k, field, "entry %q has an empty id", s.Label)
		}
		if ids[s.ID] {
			return nil, invalid(k, field, "duplicate id %q", s.ID)
		}
		ids[s.ID] = true
	}
	return ids, nil
}
