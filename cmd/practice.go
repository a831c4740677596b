package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/questiongen"
	"github.com/abhisek/feprep/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer a subtopic's questions on the command line",
	Long: `Run an exercise (untimed, retry allowed) or, with --timed, a quiz with a
real countdown. At each prompt:

  answer   submit and move on (e.g. "1,3", "5.0", "B", "1=2, 2=1")
  <enter>  move on, keeping any earlier answer
  <        go back one question
  !        submit the attempt now`,
	RunE: runPractice,
}

func init() {
	addTopicFlags(practiceCmd)
	practiceCmd.Flags().Int("timed", 0, "Quiz length in minutes: 3, 5 or 10 (0 runs an untimed exercise)")
}

func runPractice(cmd *cobra.Command, args []string) error {
	topic, err := topicFlags(cmd)
	if err != nil {
		return err
	}
	minutes, _ := cmd.Flags().GetInt("timed")
	if minutes != 0 && !session.ValidTimeLimit(minutes*60) {
		return fmt.Errorf("%w: %d minutes (choose 3, 5 or 10)", session.ErrInvalidTimeLimit, minutes)
	}
	kinds, err := kindsFlag(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	set, err := question.SeededSet(topic)
	if err != nil {
		return err
	}

	src, label, err := buildSource(cmd, st)
	if err != nil {
		return err
	}
	fmt.Printf("%s\nGenerating %d question(s) from %s...\n", topic, len(kinds), label)
	batch := questiongen.NewOrchestrator(src).Generate(cmd.Context(), topic, kinds)
	if _, err := batch.AppendTo(cmd.Context(), set); err != nil {
		return err
	}
	if failed := batch.Failed(); len(failed) > 0 {
		fmt.Printf("Could not generate: %v\n", failed)
	}
	set.Close()

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()
	p := &linePractice{in: lines(ctx, os.Stdin), out: os.Stdout}
	if minutes == 0 {
		return p.exercise(session.NewAttempt(set, session.ModeExercise))
	}

	ts, err := session.NewTimedSession(set, minutes*60)
	if err != nil {
		return err
	}
	defer ts.Close()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	p.tick = ticker.C
	return p.quiz(ts)
}

// lines delivers r line by line and closes the channel at EOF. The reader
// goroutine exits once ctx is done instead of waiting on an unread line.
func lines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			if ctx.Err() != nil {
				return
			}
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// linePractice drives an attempt from text input. Input lines and timer
// ticks are handled on one goroutine, so the attempt is never shared.
type linePractice struct {
	in   <-chan string
	out  io.Writer
	tick <-chan time.Time
	eof  bool
}

type attempt interface {
	Start() error
	Status() session.Status
	Len() int
	CurrentIndex() int
	Current() question.Question
	AnswerAt(i int) (question.Answer, bool)
	SubmitAnswer(question.Answer) error
	Next() error
	Previous() error
	Finish() error
	Score() (*session.Summary, error)
}

func (p *linePractice) exercise(a *session.Attempt) error {
	if err := a.Start(); err != nil {
		return err
	}
	for {
		if err := p.answerAll(a, nil); err != nil {
			return err
		}
		if err := p.report(a); err != nil {
			return err
		}
		if p.eof {
			return nil
		}
		fmt.Fprint(p.out, "Retry? [y/N] ")
		line, ok := <-p.in
		if !ok || !strings.EqualFold(strings.TrimSpace(line), "y") {
			return nil
		}
		if err := a.Retry(); err != nil {
			return err
		}
	}
}

func (p *linePractice) quiz(ts *session.TimedSession) error {
	if err := ts.Start(); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Quiz started: %s on the clock.\n", ts.FormatRemaining())
	if err := p.answerAll(ts, ts); err != nil {
		return err
	}
	if ts.TimerStatus() == session.TimerExpired {
		fmt.Fprintln(p.out, "\nTime's up!")
	}
	return p.report(ts)
}

// answerAll prompts until the attempt completes. ts is nil in an exercise.
func (p *linePractice) answerAll(a attempt, ts *session.TimedSession) error {
	for a.Status() == session.StatusInProgress {
		p.prompt(a, ts)

		line, ok := p.read(ts)
		if a.Status() != session.StatusInProgress {
			return nil
		}
		if !ok {
			p.eof = true
			return a.Finish()
		}

		switch strings.TrimSpace(line) {
		case "":
			if err := a.Next(); err != nil {
				return err
			}
		case "<":
			if err := a.Previous(); err != nil {
				return err
			}
		case "!":
			if err := a.Finish(); err != nil {
				return err
			}
		default:
			ans, err := question.ParseAnswer(a.Current(), line)
			if err != nil {
				fmt.Fprintln(p.out, err)
				continue
			}
			if err := a.SubmitAnswer(ans); err != nil {
				return err
			}
			if err := a.Next(); err != nil {
				return err
			}
		}
	}
	return nil
}

// read waits for the next line, ticking ts once per second meanwhile. It
// returns early when the countdown completes the attempt.
func (p *linePractice) read(ts *session.TimedSession) (string, bool) {
	for {
		select {
		case line, ok := <-p.in:
			return line, ok
		case <-p.tick:
			if ts == nil || !ts.Tick() {
				continue
			}
			if ts.Status() != session.StatusInProgress {
				return "", true
			}
			if r := ts.Remaining(); r > 0 && r%60 == 0 {
				fmt.Fprintf(p.out, "\n⏱ %s left\n", ts.FormatRemaining())
			}
		}
	}
}

func (p *linePractice) prompt(a attempt, ts *session.TimedSession) {
	i := a.CurrentIndex()
	q := a.Current()
	clock := ""
	if ts != nil {
		clock = "  ⏱ " + ts.FormatRemaining()
	}
	fmt.Fprintf(p.out, "\n── Question %d/%d · %s%s ──\n", i+1, a.Len(), q.Kind().DisplayName(), clock)
	fmt.Fprintln(p.out, q.Common().Text)
	switch q := q.(type) {
	case *question.MultipleChoice:
		for j, o := range q.Options {
			fmt.Fprintf(p.out, "  %d) %s\n", j+1, o)
		}
	case *question.PointAndClick:
		fmt.Fprintf(p.out, "  Hotspots: %s\n", strings.Join(question.HotspotLabels, " "))
	case *question.DragAndDrop:
		for j, z := range q.Dropzones {
			fmt.Fprintf(p.out, "  zone %d) %s\n", j+1, z.Label)
		}
		for j, it := range q.Items {
			fmt.Fprintf(p.out, "  item %d) %s\n", j+1, it.Label)
		}
	}
	if prev, ok := a.AnswerAt(i); ok {
		fmt.Fprintf(p.out, "Current answer: %s\n", question.DescribeAnswer(q, prev))
	}
	fmt.Fprint(p.out, "> ")
}

func (p *linePractice) report(a attempt) error {
	sum, err := a.Score()
	if err != nil {
		if errors.Is(err, session.ErrAttemptNotCompleted) {
			return fmt.Errorf("attempt ended early: %w", err)
		}
		return err
	}
	slog.Info("attempt scored", "mode", sum.Mode, "correct", sum.Correct, "total", sum.Total, "percentage", sum.Percentage)

	fmt.Fprintf(p.out, "\n── %d%% · %s ──\n", sum.Percentage, sum.Message())
	fmt.Fprintf(p.out, "Correct: %d/%d   Answered: %d   Time: %s\n\n",
		sum.Correct, sum.Total, sum.Answered, session.FormatClock(int(sum.Duration.Seconds())))
	for _, r := range sum.Results {
		mark := "✗"
		switch {
		case !r.Answered:
			mark = "–"
		case r.Correct:
			mark = "✓"
		}
		fmt.Fprintf(p.out, "%s %d. %s\n", mark, r.Index+1, r.Question.Common().Text)
		if !r.Correct {
			fmt.Fprintf(p.out, "    yours: %s\n    answer: %s\n",
				question.DescribeAnswer(r.Question, r.Answer), question.DescribeCorrect(r.Question))
		}
	}
	return nil
}
