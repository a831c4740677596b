package question

import (
	"slices"
	"strings"
)

// NoAnswer is how a missing answer is described.
const NoAnswer = "(no answer)"

// DescribeAnswer renders a learner's answer to q for review screens.
func DescribeAnswer(q Question, a Answer) string {
	if a == nil {
		return NoAnswer
	}
	switch q := q.(type) {
	case *MultipleChoice:
		sel, ok := a.(Selection)
		if !ok {
			break
		}
		if len(sel) == 0 {
			return "(nothing selected)"
		}
		return describeOptions(q.Options, sel)
	case *FillInBlank:
		if txt, ok := a.(Text); ok {
			return string(txt)
		}
	case *PointAndClick:
		if h, ok := a.(Hotspot); ok {
			return string(h)
		}
	case *DragAndDrop:
		if m, ok := a.(Matches); ok {
			return describeMatches(q, m)
		}
	}
	return NoAnswer
}

// DescribeCorrect renders the accepted answer of q.
func DescribeCorrect(q Question) string {
	switch q := q.(type) {
	case *MultipleChoice:
		return describeOptions(q.Options, q.CorrectAnswers)
	case *FillInBlank:
		return strings.Join(q.CorrectAnswers, " or ")
	case *PointAndClick:
		if q.CorrectAnswerLabel != "" {
			return q.CorrectAnswer + " (" + q.CorrectAnswerLabel + ")"
		}
		return q.CorrectAnswer
	case *DragAndDrop:
		return describeMatches(q, q.CorrectMatches)
	}
	return ""
}

func describeOptions(options []string, indices []int) string {
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	parts := make([]string, 0, len(sorted))
	for _, i := range sorted {
		if i >= 0 && i < len(options) {
			parts = append(parts, options[i])
		}
	}
	return strings.Join(parts, "; ")
}

// describeMatches lists placements in dropzone order.
func describeMatches(q *DragAndDrop, m map[string]string) string {
	var parts []string
	for _, z := range q.Dropzones {
		if item, ok := m[z.ID]; ok {
			parts = append(parts, z.Label+" → "+q.ItemLabel(item))
		}
	}
	if len(parts) == 0 {
		return "(nothing placed)"
	}
	return strings.Join(parts, "; ")
}
