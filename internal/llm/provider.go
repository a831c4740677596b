package llm

import (
	"context"
	"encoding/json"
)

// Provider is a model vendor that can write one question per call.
type Provider interface {
	// Generate sends a single-turn request. When req.Schema is set the
	// returned Content is the question object, already checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is one question-generation call. Generation is single-turn: a
// system prompt and one user prompt.
type Request struct {
	System string

	// Prompt carries the topic, the kind instructions and the payload template.
	Prompt string

	// Schema is the payload shape for one question kind. Providers hand it to
	// the vendor's structured output and validate the reply against it.
	// With a nil Schema the reply text is returned as is.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

// Schema is a named JSON Schema, e.g. "multiple-choice-question".
type Schema struct {
	// Name is sent as the OpenAI schema name and keys the compiled-schema cache.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may differ from
	// ModelID when the vendor resolves an alias.
	Model string

	// StopReason is stopEnd or stopMaxTokens.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"

	// defaultMaxTokens applies when a request leaves MaxTokens unset and the
	// vendor requires a limit.
	defaultMaxTokens = 1024
)

// finish applies the checks every vendor reply goes through. A truncated
// reply cannot hold a complete question object. For schema requests the
// object is cut out of any surrounding prose and validated.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if req.Schema == nil {
		return resp, nil
	}
	content, err := validateResponse(req.Schema, resp.Content)
	if err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}
