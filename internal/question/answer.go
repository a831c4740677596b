package question

import (
	"maps"
	"strings"
)

// Answer is a learner's response. Its concrete type must match the kind of
// the question it answers: Selection for multiple-choice, Text for
// fill-in-blank, Hotspot for point-and-click, Matches for drag-and-drop.
type Answer interface {
	AnswerKind() Kind
}

// Selection is the set of chosen option indices. An empty Selection is a
// deliberate answer (nothing selected), distinct from no answer at all.
type Selection []int

// Text is a typed fill-in-blank response.
type Text string

// Hotspot is the chosen point-and-click label.
type Hotspot string

// Matches maps dropzone ID to the item ID placed in it.
type Matches map[string]string

func (Selection) AnswerKind() Kind { return KindMultipleChoice }
func (Text) AnswerKind() Kind      { return KindFillInBlank }
func (Hotspot) AnswerKind() Kind   { return KindPointAndClick }
func (Matches) AnswerKind() Kind   { return KindDragAndDrop }

// Toggle returns a copy of s with option i added or removed.
func (s Selection) Toggle(i int) Selection {
	out := make(Selection, 0, len(s)+1)
	found := false
	for _, v := range s {
		if v == i {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, i)
	}
	return out
}

// Has reports whether option i is selected.
func (s Selection) Has(i int) bool {
	for _, v := range s {
		if v == i {
			return true
		}
	}
	return false
}

// Evaluate reports whether a answers q correctly. A nil answer, or an answer
// whose type does not match the question kind, is incorrect.
func Evaluate(q Question, a Answer) bool {
	if q == nil || a == nil {
		return false
	}
	switch q := q.(type) {
	case *MultipleChoice:
		sel, ok := a.(Selection)
		return ok && sameIndexSet(sel, q.CorrectAnswers)
	case *FillInBlank:
		txt, ok := a.(Text)
		return ok && matchesVariant(string(txt), q.CorrectAnswers)
	case *PointAndClick:
		h, ok := a.(Hotspot)
		return ok && string(h) == q.CorrectAnswer
	case *DragAndDrop:
		m, ok := a.(Matches)
		return ok && maps.Equal(map[string]string(m), q.CorrectMatches)
	}
	return false
}

// sameIndexSet compares two index lists as sets.
func sameIndexSet(got, want []int) bool {
	g := make(map[int]bool, len(got))
	for _, v := range got {
		g[v] = true
	}
	w := make(map[int]bool, len(want))
	for _, v := range want {
		w[v] = true
	}
	return maps.Equal(g, w)
}

// matchesVariant compares after trimming and lower-casing. No numeric
// tolerance: "5" and "5.00" only match if both are listed.
func matchesVariant(input string, variants []string) bool {
	norm := normalizeText(input)
	for _, v := range variants {
		if norm == normalizeText(v) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
