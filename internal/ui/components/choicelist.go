package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// ChoiceList is a keyboard-driven option picker. In multi mode every option
// can be toggled independently; otherwise choosing one clears the others.
type ChoiceList struct {
	Options []string
	Multi   bool
	Cursor  int

	selected question.Selection
	touched  bool
}

// NewChoiceList creates a picker over options.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{Options: options, Multi: multi}
}

// SetSelection restores a previously recorded selection.
func (c *ChoiceList) SetSelection(sel question.Selection) {
	c.selected = append(question.Selection(nil), sel...)
	c.touched = true
}

// Selection returns the chosen option indices in the order they were picked.
func (c ChoiceList) Selection() question.Selection {
	return append(question.Selection(nil), c.selected...)
}

// Touched reports whether the learner has chosen anything yet, including
// toggling an option back off.
func (c ChoiceList) Touched() bool { return c.touched }

// Update handles cursor movement and selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		c.choose(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Cursor = i
				c.choose(i)
			}
		}
	}
	return c, nil
}

func (c *ChoiceList) choose(i int) {
	c.touched = true
	if c.Multi {
		c.selected = c.selected.Toggle(i)
		return
	}
	c.selected = question.Selection{i}
}

// View renders the options with checkboxes (multi) or radio marks.
func (c ChoiceList) View() string {
	on, off := "(•)", "( )"
	if c.Multi {
		on, off = "[x]", "[ ]"
	}

	var b strings.Builder
	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}
		mark := off
		if c.selected.Has(i) {
			mark = on
		}
		line := fmt.Sprintf("%s%s %d) %s", cursor, mark, i+1, opt)
		if i == c.Cursor {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
