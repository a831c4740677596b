package question

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrBadInput is returned by ParseAnswer for input that does not fit q.
var ErrBadInput = errors.New("cannot read answer")

// ParseAnswer reads a typed answer to q:
//
//	multiple choice  option numbers, e.g. "1,3" or "1 3"
//	fill in blank    the text as typed
//	point and click  a hotspot label, e.g. "b"
//	drag and drop    zone=item number pairs, e.g. "1=2, 2=1"
//
// Numbers are 1-based as displayed.
func ParseAnswer(q Question, input string) (Answer, error) {
	input = strings.TrimSpace(input)
	switch q := q.(type) {
	case *MultipleChoice:
		var sel Selection
		for _, f := range fields(input) {
			n, err := optionNumber(f, len(q.Options))
			if err != nil {
				return nil, err
			}
			if !sel.Has(n) {
				sel = append(sel, n)
			}
		}
		return sel, nil
	case *FillInBlank:
		return Text(input), nil
	case *PointAndClick:
		label := strings.ToUpper(input)
		if !slices.Contains(HotspotLabels, label) {
			return nil, fmt.Errorf("%w: hotspot must be one of %s", ErrBadInput, strings.Join(HotspotLabels, ", "))
		}
		return Hotspot(label), nil
	case *DragAndDrop:
		m := Matches{}
		for _, f := range fields(input) {
			zs, is, ok := strings.Cut(f, "=")
			if !ok {
				return nil, fmt.Errorf("%w: %q is not zone=item", ErrBadInput, f)
			}
			z, err := optionNumber(zs, len(q.Dropzones))
			if err != nil {
				return nil, err
			}
			i, err := optionNumber(is, len(q.Items))
			if err != nil {
				return nil, err
			}
			m[q.Dropzones[z].ID] = q.Items[i].ID
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: unsupported question %T", ErrBadInput, q)
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
}

// optionNumber converts a 1-based number into a 0-based index below n.
func optionNumber(s string, n int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > n {
		return 0, fmt.Errorf("%w: %q is not a number from 1 to %d", ErrBadInput, s, n)
	}
	return v - 1, nil
}
