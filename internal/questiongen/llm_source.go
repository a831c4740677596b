package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/feprep/internal/llm"
	"github.com/abhisek/feprep/internal/question"
)

// LLMSource implements Source using an LLM provider.
type LLMSource struct {
	provider llm.Provider
	config   Config
}

// NewLLMSource creates an LLMSource. The provider should not retry on its
// own if callers rely on one request per kind.
func NewLLMSource(provider llm.Provider, cfg Config) *LLMSource {
	return &LLMSource{provider: provider, config: cfg}
}

// Generate asks the model for one question of req.Kind and decodes it.
func (s *LLMSource) Generate(ctx context.Context, req Request) (question.Question, error) {
	schema := SchemaFor(req.Kind)
	if schema == nil {
		return nil, fmt.Errorf("%w: %q", question.ErrUnknownKind, req.Kind)
	}

	resp, err := s.provider.Generate(llm.ForKind(ctx, req.Kind), llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(req),
		Schema:      schema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	payload := []byte(resp.Content)
	if req.Kind == question.KindDragAndDrop {
		payload, err = pairsToMatches(payload)
		if err != nil {
			return nil, err
		}
	}

	q, err := question.Decode(req.Kind, payload)
	if err != nil {
		return nil, err
	}
	if err := checkKind(req, q); err != nil {
		return nil, err
	}
	return q, nil
}

// dragAndDropOutput is the model's drag-and-drop reply. Replies that
// already carry correctMatches are passed through.
type dragAndDropOutput struct {
	Text      string          `json:"text"`
	Items     []question.Slot `json:"items"`
	Dropzones []question.Slot `json:"dropzones"`
	Matches   []struct {
		DropzoneID string `json:"dropzoneId"`
		ItemID     string `json:"itemId"`
	} `json:"matches"`
	CorrectMatches map[string]string `json:"correctMatches"`
	Explanation    string            `json:"explanation"`
}

// pairsToMatches rewrites the pairing list into the correctMatches map of
// the drag-and-drop payload.
func pairsToMatches(raw []byte) ([]byte, error) {
	obj, err := question.ExtractObject(string(raw))
	if err != nil {
		return nil, err
	}
	var out dragAndDropOutput
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return nil, fmt.Errorf("%w: decode drag-and-drop reply: %v", question.ErrInvalidQuestion, err)
	}

	matches := out.CorrectMatches
	if len(out.Matches) > 0 {
		matches = make(map[string]string, len(out.Matches))
		for _, m := range out.Matches {
			if _, dup := matches[m.DropzoneID]; dup {
				return nil, fmt.Errorf("%w: drop zone %q paired twice", question.ErrInvalidQuestion, m.DropzoneID)
			}
			matches[m.DropzoneID] = m.ItemID
		}
	}

	q := &question.DragAndDrop{
		Base:           question.Base{Text: out.Text, Explanation: out.Explanation},
		Items:          out.Items,
		Dropzones:      out.Dropzones,
		CorrectMatches: matches,
	}
	return question.Encode(q)
}
