package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/feprep/internal/question"
)

// Config controls question generation.
type Config struct {
	// Kinds is the list requested per generation run, one question each.
	Kinds []question.Kind

	// MaxTokens is the token budget for one LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig requests one multiple-choice and one fill-in-blank question.
func DefaultConfig() Config {
	return Config{
		Kinds:       []question.Kind{question.KindMultipleChoice, question.KindFillInBlank},
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// ParseKinds parses a comma-separated kind list such as
// "multiple-choice,drag-and-drop". The value "all" selects every kind.
// Repeated kinds are kept; each entry is one request.
func ParseKinds(s string) ([]question.Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no question kinds given")
	}
	if s == "all" {
		return question.Kinds(), nil
	}

	var kinds []question.Kind
	for _, part := range strings.Split(s, ",") {
		k, err := question.ParseKind(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
