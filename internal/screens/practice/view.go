package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/question"
	sess "github.com/abhisek/feprep/internal/session"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/layout"
	"github.com/abhisek/feprep/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	var body string
	switch s.phase() {
	case phaseError:
		body = renderError(width, s.errMsg)
	case phaseReady:
		body = s.renderReady(width)
	case phaseActive:
		body = s.renderQuestion(width)
	case phaseDone:
		body = s.renderDone(width)
	}
	if s.notice != "" {
		body += "\n\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Warning), s.notice)
	}
	return body
}

// renderReady shows what the attempt will contain before it starts.
func (s *PracticeScreen) renderReady(width int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(s.topic.SubtopicTitle))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(s.topic.CategoryTitle))
	b.WriteString("\n\n")

	mode := "Exercise · untimed, retry allowed"
	if s.mode == sess.ModeTimedQuiz {
		mode = fmt.Sprintf("Timed quiz · %s, one attempt", sess.FormatClock(s.limit))
	}
	b.WriteString(theme.Body.Render(mode))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("%d question(s) ready", s.set.Len())))
	if s.generating {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("  ·  generating %d more...", len(s.kinds))))
	}
	b.WriteString("\n")
	if s.genNote != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.genNote))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.set.Len() > 0 {
		b.WriteString(theme.Hint.Render("Press Enter to begin."))
	} else if !s.generating {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("No exercises available for this topic."))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+components.Card(b.String(), cw))
}

// renderQuestion renders the current question and its input widget.
func (s *PracticeScreen) renderQuestion(width int) string {
	q := s.attempt.Current()
	cw := components.ContentWidth(width)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Kind().DisplayName()))
	infoRight := theme.Muted.Render(fmt.Sprintf("Question %d of %d  ·  %d answered",
		s.attempt.CurrentIndex()+1, s.attempt.Len(), s.attempt.Answered()))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	text := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Common().Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	b.WriteString("\n\n")

	var input string
	switch q.(type) {
	case *question.MultipleChoice:
		input = s.choices.View() + "\n" + theme.Hint.Render("Select every correct option.")
	case *question.PointAndClick:
		input = theme.Muted.Render("Choose the labelled point:") + "\n" + s.choices.View()
	case *question.FillInBlank:
		input = "Answer: " + s.input.View()
	case *question.DragAndDrop:
		input = s.matcher.View() + "\n" + theme.Hint.Render("↑↓ choose a zone, ←→ cycle the item placed in it.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(input)))

	if s.timed != nil {
		b.WriteString("\n\n")
		clock := theme.ClockNormal
		if s.timed.Remaining() <= 30 {
			clock = theme.ClockLow
		}
		b.WriteString(layout.Centered(width, clock, "Time left "+s.timed.FormatRemaining()))
	}

	return b.String()
}

// renderDone is shown when returning from the results screen.
func (s *PracticeScreen) renderDone(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Title, "Attempt complete"))
	b.WriteString("\n\n")
	if s.summary != nil {
		b.WriteString(layout.Centered(width, theme.Body,
			fmt.Sprintf("%d of %d correct (%d%%)", s.summary.Correct, s.summary.Total, s.summary.Percentage)))
		b.WriteString("\n\n")
	}
	hint := "Press Enter to review your results."
	if s.mode == sess.ModeExercise {
		hint = "Press Enter to review your results or R to try again."
	}
	b.WriteString(layout.Centered(width, theme.Hint, hint))
	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
