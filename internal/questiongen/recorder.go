package questiongen

import (
	"context"
	"log/slog"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/store"
)

// Recorder is a Source decorator that saves every generated question into
// the bank so it can be served later by a BankSource.
type Recorder struct {
	inner Source
	repo  store.QuestionRepo
	label string
}

// WithRecording wraps src so successful questions are saved to repo with
// label as their source ("llm", "http").
func WithRecording(src Source, repo store.QuestionRepo, label string) Source {
	return &Recorder{inner: src, repo: repo, label: label}
}

func (r *Recorder) Generate(ctx context.Context, req Request) (question.Question, error) {
	q, err := r.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := question.Encode(q)
	if err != nil {
		slog.WarnContext(ctx, "encode question for bank", "kind", req.Kind, "error", err)
		return q, nil
	}

	// Saving is best effort; the caller still gets the question.
	added, err := r.repo.SaveQuestion(ctx, store.BankQuestion{
		Category: req.Topic.CategoryKey,
		Subtopic: req.Topic.SubtopicID,
		Kind:     string(req.Kind),
		Payload:  string(payload),
		Source:   r.label,
	})
	if err != nil {
		slog.WarnContext(ctx, "save question to bank", "kind", req.Kind, "topic", req.Topic.Key(), "error", err)
		return q, nil
	}
	slog.DebugContext(ctx, "recorded question", "kind", req.Kind, "topic", req.Topic.Key(), "added", added)
	return q, nil
}
