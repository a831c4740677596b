package questiongen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
)

// Orchestrator requests one question per kind from a Source, one kind at a
// time, and keeps going when a kind fails.
type Orchestrator struct {
	source Source
}

// NewOrchestrator creates an Orchestrator over src.
func NewOrchestrator(src Source) *Orchestrator {
	return &Orchestrator{source: src}
}

// Result is the settled outcome of one kind's request. Exactly one of
// Question and Err is set.
type Result struct {
	Kind     question.Kind
	Question question.Question
	Err      error
}

// Batch holds the results of one generation run, in request order.
type Batch struct {
	Topic   catalog.Topic
	Results []Result
}

// Generate requests one question for each entry of kinds. Failures are
// recorded as *GenerationError results; once ctx is done the remaining
// kinds fail with the context error without calling the source.
func (o *Orchestrator) Generate(ctx context.Context, topic catalog.Topic, kinds []question.Kind) *Batch {
	b := &Batch{Topic: topic, Results: make([]Result, 0, len(kinds))}

	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			b.Results = append(b.Results, Result{Kind: kind, Err: &GenerationError{Kind: kind, Err: err}})
			continue
		}

		q, err := o.source.Generate(ctx, Request{Topic: topic, Kind: kind})
		if err == nil && q == nil {
			err = fmt.Errorf("%w: source returned no question", question.ErrInvalidQuestion)
		}
		if err != nil {
			slog.WarnContext(ctx, "question generation failed", "kind", kind, "topic", topic.Key(), "error", err)
			b.Results = append(b.Results, Result{Kind: kind, Err: &GenerationError{Kind: kind, Err: err}})
			continue
		}

		slog.DebugContext(ctx, "question generated", "kind", kind, "topic", topic.Key())
		b.Results = append(b.Results, Result{Kind: kind, Question: q})
	}

	return b
}

// Questions returns the successfully generated questions in request order.
func (b *Batch) Questions() []question.Question {
	var out []question.Question
	for _, r := range b.Results {
		if r.Err == nil {
			out = append(out, r.Question)
		}
	}
	return out
}

// Failed returns the kinds that could not be generated.
func (b *Batch) Failed() []question.Kind {
	var out []question.Kind
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r.Kind)
		}
	}
	return out
}

// Err joins every failure in the batch, or returns nil if all succeeded.
func (b *Batch) Err() error {
	var errs []error
	for _, r := range b.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// AppendTo adds the batch's questions to set and returns how many were
// added. Nothing is appended if set was closed or ctx is done by the time
// the batch arrives, or if set belongs to a different topic.
func (b *Batch) AppendTo(ctx context.Context, set *question.Set) (int, error) {
	if set.Closed() {
		return 0, question.ErrSetClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if set.Topic() != b.Topic {
		return 0, fmt.Errorf("batch for %s cannot be added to a %s set", b.Topic.Key(), set.Topic().Key())
	}

	added := 0
	for _, q := range b.Questions() {
		if _, err := set.Append(q); err != nil {
			slog.WarnContext(ctx, "dropping generated question", "kind", q.Kind(), "error", err)
			continue
		}
		added++
	}
	return added, nil
}

// Fill generates kinds for set's topic and appends the results. It returns
// ErrNoQuestionsAvailable, joined with the per-kind failures, when nothing
// was added.
func (o *Orchestrator) Fill(ctx context.Context, set *question.Set, kinds []question.Kind) (int, error) {
	b := o.Generate(ctx, set.Topic(), kinds)
	added, err := b.AppendTo(ctx, set)
	if err != nil {
		return 0, err
	}
	if added == 0 {
		if ferr := b.Err(); ferr != nil {
			return 0, fmt.Errorf("%w: %w", ErrNoQuestionsAvailable, ferr)
		}
		return 0, ErrNoQuestionsAvailable
	}
	return added, nil
}
