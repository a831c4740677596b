package practice

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/questiongen"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screens/summary"
	sess "github.com/abhisek/feprep/internal/session"
)

// fakeGenerator returns canned results and records the context it saw.
type fakeGenerator struct {
	results []questiongen.Result
	calls   int
	ctx     context.Context
}

func (f *fakeGenerator) Generate(ctx context.Context, topic catalog.Topic, kinds []question.Kind) *questiongen.Batch {
	f.calls++
	f.ctx = ctx
	return &questiongen.Batch{Topic: topic, Results: f.results}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func mustTopic(t *testing.T, category, subtopic string) catalog.Topic {
	t.Helper()
	topic, err := catalog.Lookup(category, subtopic)
	if err != nil {
		t.Fatalf("lookup %s-%s: %v", category, subtopic, err)
	}
	return topic
}

func press(s *PracticeScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

// pushedSummary runs cmd and returns the summary screen it pushes, if any.
func pushedSummary(t *testing.T, cmd tea.Cmd) *summary.SummaryScreen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	scr, ok := push.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("expected summary screen, got %T", push.Screen)
	}
	return scr
}

func dndQuestion() *question.DragAndDrop {
	return &question.DragAndDrop{
		Base:           question.Base{Text: "Match each support to its reactions."},
		Items:          []question.Slot{{ID: "i1", Label: "Two forces"}, {ID: "i2", Label: "One force"}},
		Dropzones:      []question.Slot{{ID: "z1", Label: "Pin"}, {ID: "z2", Label: "Roller"}},
		CorrectMatches: map[string]string{"z1": "i1", "z2": "i2"},
	}
}

func TestPractice_Title(t *testing.T) {
	s := NewExercise(mustTopic(t, "statics", "A"), Options{})
	if !strings.HasPrefix(s.Title(), "Exercise · ") {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestPractice_SeedsWithoutGenerator(t *testing.T) {
	s := NewExercise(mustTopic(t, "mathematics", "A"), Options{})
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no generation command without a generator")
	}
	if s.set.Len() != 2 {
		t.Fatalf("set size = %d, want 2 seeds", s.set.Len())
	}
	if s.phase() != phaseReady {
		t.Fatalf("phase = %v, want ready", s.phase())
	}
	if !strings.Contains(s.View(100, 30), "2 question(s) ready") {
		t.Error("expected ready count in view")
	}
}

func TestPractice_GeneratedQuestionsAppended(t *testing.T) {
	gen := &fakeGenerator{results: []questiongen.Result{
		{Kind: question.KindDragAndDrop, Question: dndQuestion()},
		{Kind: question.KindFillInBlank, Err: &questiongen.GenerationError{Kind: question.KindFillInBlank, Err: errors.New("rate limited")}},
	}}
	s := NewExercise(mustTopic(t, "statics", "A"), Options{
		Generator: gen,
		Kinds:     []question.Kind{question.KindDragAndDrop, question.KindFillInBlank},
	})

	cmd := s.Init()
	if cmd == nil || !s.generating {
		t.Fatal("expected generation to start")
	}
	s.Update(cmd())

	if s.generating {
		t.Error("expected generation to finish")
	}
	if s.set.Len() != 3 {
		t.Fatalf("set size = %d, want 2 seeds + 1 generated", s.set.Len())
	}
	if !strings.Contains(s.genNote, "Fill in the Blank") {
		t.Errorf("expected failed kind in note, got %q", s.genNote)
	}
}

func TestPractice_CloseDiscardsPendingGeneration(t *testing.T) {
	gen := &fakeGenerator{results: []questiongen.Result{
		{Kind: question.KindDragAndDrop, Question: dndQuestion()},
	}}
	s := NewExercise(mustTopic(t, "statics", "A"), Options{
		Generator: gen,
		Kinds:     []question.Kind{question.KindDragAndDrop},
	})

	cmd := s.Init()
	s.Close()
	msg := cmd()
	s.Update(msg)

	if gen.ctx.Err() == nil {
		t.Error("expected generation context to be cancelled on close")
	}
	if s.set.Len() != 2 {
		t.Fatalf("set size = %d, late batch must be discarded", s.set.Len())
	}
	if !s.set.Closed() {
		t.Error("expected set closed")
	}
	s.Close() // idempotent
}

func TestPractice_ExerciseFlow(t *testing.T) {
	s := NewExercise(mustTopic(t, "mathematics", "A"), Options{})
	s.Init()

	press(s, specialKey(tea.KeyEnter))
	if s.phase() != phaseActive {
		t.Fatalf("phase = %v, want active", s.phase())
	}
	if _, ok := s.attempt.Current().(*question.MultipleChoice); !ok {
		t.Fatalf("expected MC first, got %T", s.attempt.Current())
	}
	if s.Status() != "Q 1/2  " {
		t.Errorf("Status = %q", s.Status())
	}

	// Options 1-3 are the correct set.
	press(s, keyPress('1'), keyPress('2'), keyPress('3'), specialKey(tea.KeyEnter))
	if _, ok := s.attempt.Current().(*question.FillInBlank); !ok {
		t.Fatalf("expected FIB second, got %T", s.attempt.Current())
	}

	press(s, keyPress('5'))
	cmd := press(s, specialKey(tea.KeyEnter))
	if s.attempt.Status() != sess.StatusCompleted {
		t.Fatalf("status = %v, want completed", s.attempt.Status())
	}

	pushedSummary(t, cmd)
	if s.summary.Correct != 2 || s.summary.Percentage != 100 {
		t.Errorf("summary = %d correct, %d%%", s.summary.Correct, s.summary.Percentage)
	}
	if s.summary.Band != sess.BandExcellent {
		t.Errorf("band = %v", s.summary.Band)
	}
}

func TestPractice_PreviousRestoresAnswer(t *testing.T) {
	s := NewExercise(mustTopic(t, "mathematics", "A"), Options{})
	s.Init()
	press(s, specialKey(tea.KeyEnter), keyPress('4'), specialKey(tea.KeyEnter))

	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.attempt.CurrentIndex() != 0 {
		t.Fatalf("index = %d, want 0", s.attempt.CurrentIndex())
	}
	if sel := s.choices.Selection(); len(sel) != 1 || sel[0] != 3 {
		t.Fatalf("restored selection = %v, want [3]", sel)
	}
}

func TestPractice_UntouchedQuestionStaysUnanswered(t *testing.T) {
	s := NewExercise(mustTopic(t, "mathematics", "A"), Options{})
	s.Init()
	press(s, specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))

	if _, ok := s.attempt.AnswerAt(0); ok {
		t.Fatal("skipped question must not have an answer")
	}
}

func TestPractice_SubmitEarlyAndRetry(t *testing.T) {
	s := NewExercise(mustTopic(t, "mathematics", "A"), Options{})
	s.Init()
	press(s, specialKey(tea.KeyEnter), keyPress('1'))

	cmd := press(s, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	pushedSummary(t, cmd)
	if s.summary.Answered != 1 || s.summary.Correct != 0 {
		t.Fatalf("summary = %+v", s.summary)
	}

	press(s, summary.RetryMsg{})
	if s.attempt.Status() != sess.StatusInProgress || s.attempt.Answered() != 0 {
		t.Fatalf("retry did not reset: %v, %d answered", s.attempt.Status(), s.attempt.Answered())
	}
	if s.attempt.CurrentIndex() != 0 || s.summary != nil {
		t.Fatal("retry should restart from the first question")
	}
}

func TestPractice_EmptyTopic(t *testing.T) {
	s := NewExercise(mustTopic(t, "ethics", "A"), Options{})
	s.Init()
	press(s, specialKey(tea.KeyEnter))

	if s.phase() != phaseReady {
		t.Fatalf("phase = %v, want ready", s.phase())
	}
	if s.notice != sess.ErrEmptyQuestionSet.Error() {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestPractice_DragAndDropAnswer(t *testing.T) {
	gen := &fakeGenerator{results: []questiongen.Result{
		{Kind: question.KindDragAndDrop, Question: dndQuestion()},
	}}
	s := NewExercise(mustTopic(t, "ethics", "A"), Options{
		Generator: gen,
		Kinds:     []question.Kind{question.KindDragAndDrop},
	})
	s.Update(s.Init()())
	press(s, specialKey(tea.KeyEnter))

	// Pin -> Two forces, Roller -> One force.
	press(s, specialKey(tea.KeyRight), specialKey(tea.KeyDown), specialKey(tea.KeyLeft))
	cmd := press(s, specialKey(tea.KeyEnter))

	pushedSummary(t, cmd)
	if s.summary.Correct != 1 {
		t.Fatalf("expected the drag-and-drop answer to be correct, got %+v", s.summary.Results[0].Answer)
	}
}

func TestPractice_InvalidQuizLimit(t *testing.T) {
	_, err := NewQuiz(mustTopic(t, "statics", "A"), 120, Options{})
	if !errors.Is(err, sess.ErrInvalidTimeLimit) {
		t.Fatalf("expected ErrInvalidTimeLimit, got %v", err)
	}
}

func TestPractice_QuizExpiryKeepsAnswers(t *testing.T) {
	s, err := NewQuiz(mustTopic(t, "statics", "A"), 180, Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Init()
	if cmd := press(s, specialKey(tea.KeyEnter)); cmd == nil {
		t.Fatal("expected tick command on quiz start")
	}
	if s.Status() != "⏱ 3:00  " {
		t.Errorf("Status = %q", s.Status())
	}

	// Correct component pair is option 2; never navigate away.
	press(s, keyPress('2'))

	var cmd tea.Cmd
	for range 179 {
		cmd = press(s, timerTickMsg{gen: s.gen})
	}
	if s.attempt.Status() != sess.StatusInProgress || cmd == nil {
		t.Fatal("quiz ended early")
	}
	cmd = press(s, timerTickMsg{gen: s.gen})
	if s.attempt.Status() != sess.StatusCompleted {
		t.Fatalf("status = %v, want completed on expiry", s.attempt.Status())
	}
	if s.timed.TimerStatus() != sess.TimerExpired {
		t.Errorf("timer = %v, want expired", s.timed.TimerStatus())
	}

	pushedSummary(t, cmd)
	if s.summary.Correct != 1 || s.summary.Answered != 1 || s.summary.Total != 2 {
		t.Fatalf("summary = %d/%d answered %d", s.summary.Correct, s.summary.Total, s.summary.Answered)
	}

	// Quizzes cannot be retried.
	press(s, keyPress('r'))
	if s.attempt.Status() != sess.StatusCompleted {
		t.Fatal("quiz must stay completed")
	}
}

func TestPractice_TicksIgnoredAfterClose(t *testing.T) {
	s, err := NewQuiz(mustTopic(t, "statics", "A"), 180, Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Init()
	press(s, specialKey(tea.KeyEnter))
	stale := timerTickMsg{gen: s.gen}

	s.Close()
	if cmd := press(s, stale); cmd != nil {
		t.Fatal("expected no further ticks after close")
	}
	if s.timed.Remaining() != 180 {
		t.Fatalf("remaining = %d, closed quiz must not count down", s.timed.Remaining())
	}
	if s.timed.TimerStatus() != sess.TimerStopped {
		t.Errorf("timer = %v, want stopped", s.timed.TimerStatus())
	}
}
