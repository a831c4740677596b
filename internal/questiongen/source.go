// Package questiongen obtains questions from a Source (an LLM, a remote
// endpoint or the local bank) and appends them to a question set,
// tolerating per-kind failures.
package questiongen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
)

var (
	// ErrGenerationFailed is matched by every per-kind generation failure.
	ErrGenerationFailed = errors.New("question generation failed")

	// ErrNoQuestionsAvailable is returned by Fill when no question was added.
	ErrNoQuestionsAvailable = errors.New("no questions available")
)

// Request asks a Source for one question of Kind about Topic.
type Request struct {
	Topic catalog.Topic
	Kind  question.Kind
}

// Source produces a single validated question for a request.
type Source interface {
	// Generate returns a question whose Kind matches req.Kind, or an error.
	// Implementations do not retry.
	Generate(ctx context.Context, req Request) (question.Question, error)
}

// GenerationError reports that the question of Kind could not be obtained.
type GenerationError struct {
	Kind question.Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s question: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is makes every GenerationError match ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// checkKind rejects a question whose kind differs from the request.
func checkKind(req Request, q question.Question) error {
	if q.Kind() != req.Kind {
		return fmt.Errorf("%w: source returned %s for a %s request", question.ErrInvalidQuestion, q.Kind(), req.Kind)
	}
	return nil
}
