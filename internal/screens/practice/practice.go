// Package practice is the screen where a learner works through a topic's
// question set as an untimed exercise or a timed quiz.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/questiongen"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screen"
	"github.com/abhisek/feprep/internal/screens/summary"
	sess "github.com/abhisek/feprep/internal/session"
	"github.com/abhisek/feprep/internal/ui/components"
	"github.com/abhisek/feprep/internal/ui/layout"
)

// Generator produces a batch of questions for a topic.
// *questiongen.Orchestrator implements it.
type Generator interface {
	Generate(ctx context.Context, topic catalog.Topic, kinds []question.Kind) *questiongen.Batch
}

// Options configures where extra questions come from.
type Options struct {
	// Generator may be nil, in which case only seed questions are offered.
	Generator Generator
	Kinds     []question.Kind
}

// runner is the attempt API shared by *sess.Attempt and *sess.TimedSession.
type runner interface {
	Start() error
	Status() sess.Status
	Mode() sess.Mode
	Len() int
	CurrentIndex() int
	Current() question.Question
	AnswerAt(i int) (question.Answer, bool)
	Answered() int
	SubmitAnswer(question.Answer) error
	ClearAnswer() error
	Next() error
	Previous() error
	Finish() error
	Retry() error
	Score() (*sess.Summary, error)
}

// PracticeScreen implements screen.Screen for one attempt over a topic.
type PracticeScreen struct {
	topic     catalog.Topic
	mode      sess.Mode
	limit     int
	generator Generator
	kinds     []question.Kind

	set     *question.Set
	attempt runner
	timed   *sess.TimedSession

	ctx    context.Context
	cancel context.CancelFunc
	gen    int
	closed bool

	generating bool
	genNote    string
	errMsg     string
	notice     string

	choices components.ChoiceList
	input   components.TextInput
	matcher components.Matcher

	summary *sess.Summary
}

var (
	_ screen.Screen          = (*PracticeScreen)(nil)
	_ screen.KeyHintProvider = (*PracticeScreen)(nil)
	_ screen.StatusProvider  = (*PracticeScreen)(nil)
	_ screen.Closer          = (*PracticeScreen)(nil)
)

// NewExercise creates an untimed exercise screen for topic.
func NewExercise(topic catalog.Topic, opts Options) *PracticeScreen {
	return newScreen(topic, sess.ModeExercise, 0, opts)
}

// NewQuiz creates a timed quiz screen. limitSeconds must be one of
// session.TimeLimits.
func NewQuiz(topic catalog.Topic, limitSeconds int, opts Options) (*PracticeScreen, error) {
	if !sess.ValidTimeLimit(limitSeconds) {
		return nil, fmt.Errorf("%w: %d seconds", sess.ErrInvalidTimeLimit, limitSeconds)
	}
	return newScreen(topic, sess.ModeTimedQuiz, limitSeconds, opts), nil
}

func newScreen(topic catalog.Topic, mode sess.Mode, limit int, opts Options) *PracticeScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &PracticeScreen{
		topic:     topic,
		mode:      mode,
		limit:     limit,
		generator: opts.Generator,
		kinds:     opts.Kinds,
		ctx:       ctx,
		cancel:    cancel,
		input:     components.NewTextInput("Type your answer...", 64),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	set, err := question.SeededSet(s.topic)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.set = set

	if s.generator == nil || len(s.kinds) == 0 {
		return nil
	}
	s.generating = true
	return s.generateCmd()
}

func (s *PracticeScreen) Title() string {
	if s.mode == sess.ModeTimedQuiz {
		return "Quiz · " + s.topic.SubtopicTitle
	}
	return "Exercise · " + s.topic.SubtopicTitle
}

// Status shows the countdown in a quiz and the position in an exercise.
func (s *PracticeScreen) Status() string {
	if s.timed != nil {
		return "⏱ " + s.timed.FormatRemaining() + "  "
	}
	if s.attempt != nil && s.attempt.Status() == sess.StatusInProgress {
		return fmt.Sprintf("Q %d/%d  ", s.attempt.CurrentIndex()+1, s.attempt.Len())
	}
	return ""
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.phase() {
	case phaseReady:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseActive:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Shift+Tab", Description: "Previous"},
			{Key: "Ctrl+S", Description: "Submit"},
		}
		switch s.attempt.Current().(type) {
		case *question.MultipleChoice:
			hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
		case *question.PointAndClick:
			hints = append(hints, layout.KeyHint{Key: "Space", Description: "Choose"})
		case *question.DragAndDrop:
			hints = append(hints, layout.KeyHint{Key: "←→", Description: "Place item"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	case phaseDone:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Results"}}
		if s.mode == sess.ModeExercise {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

// Close discards the screen: pending generation is cancelled, the set
// stops accepting questions, and outstanding ticks are ignored.
func (s *PracticeScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	s.cancel()
	if s.set != nil {
		s.set.Close()
	}
	if s.timed != nil {
		s.timed.Close()
	}
}

type phase int

const (
	phaseError phase = iota
	phaseReady
	phaseActive
	phaseDone
)

func (s *PracticeScreen) phase() phase {
	switch {
	case s.errMsg != "" || s.set == nil:
		return phaseError
	case s.attempt == nil || s.attempt.Status() == sess.StatusNotStarted:
		return phaseReady
	case s.attempt.Status() == sess.StatusInProgress:
		return phaseActive
	}
	return phaseDone
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)
	case timerTickMsg:
		return s.handleTick(msg)
	case summary.RetryMsg:
		return s.retry()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase() == phaseActive {
		if _, ok := s.attempt.Current().(*question.FillInBlank); ok {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *PracticeScreen) generateCmd() tea.Cmd {
	ctx, gen, topic, kinds, g := s.ctx, s.gen, s.topic, s.kinds, s.generator
	return func() tea.Msg {
		return generatedMsg{gen: gen, batch: g.Generate(ctx, topic, kinds)}
	}
}

func (s *PracticeScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.gen || s.closed {
		return s, nil
	}
	s.generating = false

	added, err := msg.batch.AppendTo(s.ctx, s.set)
	if err != nil {
		slog.Debug("generated questions discarded", "topic", s.topic.Key(), "error", err)
		return s, nil
	}
	if failed := msg.batch.Failed(); len(failed) > 0 {
		names := make([]string, len(failed))
		for i, k := range failed {
			names[i] = k.DisplayName()
		}
		s.genNote = fmt.Sprintf("Could not generate: %s", strings.Join(names, ", "))
	}
	if added > 0 && s.attempt != nil && s.attempt.Status() != sess.StatusNotStarted {
		s.notice = fmt.Sprintf("%d new question(s) will be included next time.", added)
	}
	return s, nil
}

func (s *PracticeScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.gen || s.closed || s.timed == nil {
		return s, nil
	}
	if !s.timed.Tick() {
		return s, nil
	}
	if s.timed.Status() == sess.StatusCompleted {
		return s, s.showResults()
	}
	return s, tickCmd(s.gen)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase() {
	case phaseError:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case phaseReady:
		if key == "enter" {
			return s.start()
		}
		return s, nil

	case phaseDone:
		switch key {
		case "enter":
			return s, s.showResults()
		case "r", "R":
			return s.retry()
		}
		return s, nil
	}

	switch key {
	case "enter", "tab":
		s.commit()
		if err := s.attempt.Next(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		if s.attempt.Status() == sess.StatusCompleted {
			return s, s.showResults()
		}
		return s, s.loadWidgets()
	case "shift+tab":
		s.commit()
		if err := s.attempt.Previous(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		return s, s.loadWidgets()
	case "ctrl+s":
		s.commit()
		if err := s.attempt.Finish(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		return s, s.showResults()
	}

	var cmd tea.Cmd
	switch s.attempt.Current().(type) {
	case *question.MultipleChoice, *question.PointAndClick:
		s.choices, cmd = s.choices.Update(msg)
	case *question.FillInBlank:
		s.input, cmd = s.input.Update(msg)
	case *question.DragAndDrop:
		s.matcher, cmd = s.matcher.Update(msg)
	}
	// Record on every change so an expiring quiz keeps the latest input.
	s.commit()
	return s, cmd
}

func (s *PracticeScreen) start() (screen.Screen, tea.Cmd) {
	if s.set.Len() == 0 {
		if s.generating {
			s.notice = "Questions are still being generated."
		} else {
			s.notice = sess.ErrEmptyQuestionSet.Error()
		}
		return s, nil
	}

	if s.mode == sess.ModeTimedQuiz {
		ts, err := sess.NewTimedSession(s.set, s.limit)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.timed = ts
		s.attempt = ts
	} else {
		s.attempt = sess.NewAttempt(s.set, sess.ModeExercise)
	}

	if err := s.attempt.Start(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.notice = ""
	slog.Info("attempt started", "topic", s.topic.Key(), "mode", s.mode, "questions", s.attempt.Len())

	cmd := s.loadWidgets()
	if s.timed != nil {
		cmd = tea.Batch(cmd, tickCmd(s.gen))
	}
	return s, cmd
}

func (s *PracticeScreen) retry() (screen.Screen, tea.Cmd) {
	if s.attempt == nil {
		return s, nil
	}
	if err := s.attempt.Retry(); err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.summary = nil
	s.notice = ""
	return s, s.loadWidgets()
}

// showResults scores the completed attempt and opens the summary.
func (s *PracticeScreen) showResults() tea.Cmd {
	if s.summary == nil {
		sum, err := s.attempt.Score()
		if err != nil {
			s.notice = err.Error()
			return nil
		}
		s.summary = sum
		slog.Info("attempt completed", "topic", s.topic.Key(), "mode", s.mode,
			"correct", sum.Correct, "total", sum.Total, "percentage", sum.Percentage)
	}
	sum := s.summary
	canRetry := s.mode == sess.ModeExercise
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(sum, canRetry)}
	}
}

// loadWidgets prepares the input widget for the current question and
// restores any answer already recorded for it.
func (s *PracticeScreen) loadWidgets() tea.Cmd {
	i := s.attempt.CurrentIndex()
	prev, answered := s.attempt.AnswerAt(i)

	switch q := s.attempt.Current().(type) {
	case *question.MultipleChoice:
		s.choices = components.NewChoiceList(q.Options, true)
		if sel, ok := prev.(question.Selection); answered && ok {
			s.choices.SetSelection(sel)
		}
	case *question.PointAndClick:
		s.choices = components.NewChoiceList(question.HotspotLabels, false)
		if h, ok := prev.(question.Hotspot); answered && ok {
			for idx, label := range question.HotspotLabels {
				if label == string(h) {
					s.choices.SetSelection(question.Selection{idx})
					s.choices.Cursor = idx
				}
			}
		}
	case *question.FillInBlank:
		s.input = components.NewTextInput("Type your answer...", 64)
		if txt, ok := prev.(question.Text); answered && ok {
			s.input.SetValue(string(txt))
		}
		return s.input.Init()
	case *question.DragAndDrop:
		s.matcher = components.NewMatcher(q.Dropzones, q.Items)
		if m, ok := prev.(question.Matches); answered && ok {
			s.matcher.SetMatches(m)
		}
	}
	return nil
}

// commit records the widget state as the current question's answer. An
// untouched widget leaves the question unanswered.
func (s *PracticeScreen) commit() {
	var ans question.Answer
	switch s.attempt.Current().(type) {
	case *question.MultipleChoice:
		if s.choices.Touched() {
			ans = s.choices.Selection()
		}
	case *question.PointAndClick:
		if sel := s.choices.Selection(); len(sel) == 1 {
			ans = question.Hotspot(question.HotspotLabels[sel[0]])
		}
	case *question.FillInBlank:
		if v := strings.TrimSpace(s.input.Value()); v != "" {
			ans = question.Text(v)
		}
	case *question.DragAndDrop:
		if m := s.matcher.Matches(); len(m) > 0 {
			ans = m
		}
	}

	var err error
	if ans == nil {
		err = s.attempt.ClearAnswer()
	} else {
		err = s.attempt.SubmitAnswer(ans)
	}
	if err != nil && !errors.Is(err, sess.ErrNotInProgress) {
		slog.Warn("answer not recorded", "error", err)
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}
