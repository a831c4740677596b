package components

import (
	"fmt"
	"maps"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/ui/theme"
)

// Matcher is the keyboard rendition of a drag-and-drop board: the cursor
// walks the drop zones and left/right cycles which item sits in the zone.
type Matcher struct {
	Zones []question.Slot
	Items []question.Slot
	Zone  int

	placed map[string]string // zone ID -> item ID
}

// NewMatcher creates an empty board.
func NewMatcher(zones, items []question.Slot) Matcher {
	return Matcher{Zones: zones, Items: items, placed: make(map[string]string)}
}

// SetMatches restores a previously recorded placement.
func (m *Matcher) SetMatches(matches question.Matches) {
	m.placed = maps.Clone(map[string]string(matches))
	if m.placed == nil {
		m.placed = make(map[string]string)
	}
}

// Matches returns the current placement. Empty zones are omitted.
func (m Matcher) Matches() question.Matches {
	return question.Matches(maps.Clone(m.placed))
}

// Update handles zone movement and item cycling.
func (m Matcher) Update(msg tea.Msg) (Matcher, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Zones) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Zone > 0 {
			m.Zone--
		}
	case "down", "j":
		if m.Zone < len(m.Zones)-1 {
			m.Zone++
		}
	case "right", "l":
		m.cycle(1)
	case "left", "h":
		m.cycle(-1)
	case "backspace", "delete":
		m.placed = maps.Clone(m.placed)
		delete(m.placed, m.Zones[m.Zone].ID)
	}
	return m, nil
}

// cycle moves the current zone's item through [none, item0, item1, ...].
// An item can sit in at most one zone, so placing it clears its old zone.
func (m *Matcher) cycle(step int) {
	zone := m.Zones[m.Zone].ID
	pos := 0
	if cur, ok := m.placed[zone]; ok {
		for i, it := range m.Items {
			if it.ID == cur {
				pos = i + 1
				break
			}
		}
	}
	n := len(m.Items) + 1
	pos = ((pos+step)%n + n) % n

	placed := maps.Clone(m.placed)
	if pos == 0 {
		delete(placed, zone)
		m.placed = placed
		return
	}
	item := m.Items[pos-1].ID
	for z, it := range placed {
		if it == item {
			delete(placed, z)
		}
	}
	placed[zone] = item
	m.placed = placed
}

// View renders one line per zone.
func (m Matcher) View() string {
	width := 0
	for _, z := range m.Zones {
		width = max(width, lipgloss.Width(z.Label))
	}

	var b strings.Builder
	for i, z := range m.Zones {
		item := "·"
		if id, ok := m.placed[z.ID]; ok {
			item = itemLabel(m.Items, id)
		}
		cursor := "  "
		if i == m.Zone {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-*s  ◂ %s ▸", cursor, width, z.Label, item)
		if i == m.Zone {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func itemLabel(items []question.Slot, id string) string {
	for _, it := range items {
		if it.ID == id {
			return it.Label
		}
	}
	return id
}
