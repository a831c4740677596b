package question

import (
	"fmt"
	"strings"
)

// Kind selects the shape of a question and the rule used to evaluate it.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindFillInBlank    Kind = "fill-in-blank"
	KindPointAndClick  Kind = "point-and-click"
	KindDragAndDrop    Kind = "drag-and-drop"
)

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindMultipleChoice, KindFillInBlank, KindPointAndClick, KindDragAndDrop}
}

// ParseKind converts a kind name such as "fill-in-blank" into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindMultipleChoice, KindFillInBlank, KindPointAndClick, KindDragAndDrop:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple Choice"
	case KindFillInBlank:
		return "Fill in the Blank"
	case KindPointAndClick:
		return "Point and Click"
	case KindDragAndDrop:
		return "Drag and Drop"
	}
	return string(k)
}

// HotspotLabels are the labels a point-and-click diagram exposes.
var HotspotLabels = []string{"A", "B", "C", "D"}

// Question is one of *MultipleChoice, *FillInBlank, *PointAndClick or
// *DragAndDrop. The set is closed: only types in this package implement it.
type Question interface {
	Kind() Kind

	// Common returns the fields shared by every kind.
	Common() *Base

	// Validate checks the kind-specific rules.
	Validate() error

	sealed()
}

// Base holds the fields every question kind shares.
type Base struct {
	// ID is assigned when the question is appended to a Set.
	// Zero means the question has not been appended yet.
	ID int `json:"-"`

	Text string `json:"text"`

	// Explanation is the worked reasoning shown after answering.
	// Seed questions may leave it empty.
	Explanation string `json:"explanation,omitempty"`
}

func (b *Base) Common() *Base { return b }
func (b *Base) sealed()       {}

// MultipleChoice asks the learner to select every correct option.
// CorrectAnswers holds 0-based option indices and is treated as a set.
type MultipleChoice struct {
	Base
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
}

func (q *MultipleChoice) Kind() Kind { return KindMultipleChoice }

// IsCorrectOption reports whether option i is one of the correct answers.
func (q *MultipleChoice) IsCorrectOption(i int) bool {
	for _, c := range q.CorrectAnswers {
		if c == i {
			return true
		}
	}
	return false
}

// FillInBlank accepts any of the enumerated answer variants.
type FillInBlank struct {
	Base
	CorrectAnswers []string `json:"correctAnswers"`
}

func (q *FillInBlank) Kind() Kind { return KindFillInBlank }

// PointAndClick asks the learner to pick a hotspot label on a described diagram.
type PointAndClick struct {
	Base
	CorrectAnswer      string `json:"correctAnswer"`
	CorrectAnswerLabel string `json:"correctAnswerLabel,omitempty"`
}

func (q *PointAndClick) Kind() Kind { return KindPointAndClick }

// Slot is a draggable item or a drop zone.
type Slot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DragAndDrop asks the learner to place items into drop zones.
// CorrectMatches maps dropzone ID to item ID.
type DragAndDrop struct {
	Base
	Items          []Slot            `json:"items"`
	Dropzones      []Slot            `json:"dropzones"`
	CorrectMatches map[string]string `json:"correctMatches"`
}

func (q *DragAndDrop) Kind() Kind { return KindDragAndDrop }

// ItemLabel returns the label for an item ID, or the ID itself if unknown.
func (q *DragAndDrop) ItemLabel(id string) string {
	for _, it := range q.Items {
		if it.ID == id {
			return it.Label
		}
	}
	return id
}

var (
	_ Question = (*MultipleChoice)(nil)
	_ Question = (*FillInBlank)(nil)
	_ Question = (*PointAndClick)(nil)
	_ Question = (*DragAndDrop)(nil)
)
