package llm

import (
	"context"
	"strings"

	"github.com/abhisek/feprep/internal/question"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// questionPurpose prefixes the purpose of question-generation requests. The
// kind follows it: "question-gen:fill-in-blank".
const questionPurpose = "question-gen:"

// WithPurpose labels the requests made with ctx. The label is stored on the
// request event and carried by RequestError.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// ForKind labels ctx as generating one question of kind k.
func ForKind(ctx context.Context, k question.Kind) context.Context {
	return WithPurpose(ctx, questionPurpose+string(k))
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// KindFrom returns the question kind set by ForKind.
func KindFrom(ctx context.Context) (question.Kind, bool) {
	k, ok := strings.CutPrefix(PurposeFrom(ctx), questionPurpose)
	if !ok || k == "" {
		return "", false
	}
	return question.Kind(k), true
}
