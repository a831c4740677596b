package questiongen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abhisek/feprep/internal/question"
)

// HTTPSource implements Source against a remote generate-question endpoint
// such as the one served by `feprep serve`.
type HTTPSource struct {
	httpClient *http.Client
	url        string
}

// NewHTTPSource creates an HTTPSource posting to url. A nil client gets a
// default one with a two minute timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &HTTPSource{httpClient: client, url: url}
}

// GenerateRequest is the body of a generate-question call. Subtopic may be
// the subtopic ID or its title.
type GenerateRequest struct {
	Category     string `json:"category"`
	Subtopic     string `json:"subtopic"`
	QuestionType string `json:"questionType"`
}

// GenerateResponse is the envelope returned by a generate-question call.
// Question holds the payload plus a "type" field naming its kind.
type GenerateResponse struct {
	Success  bool            `json:"success"`
	Question json.RawMessage `json:"question,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Generate posts the request and decodes the returned payload.
func (s *HTTPSource) Generate(ctx context.Context, req Request) (question.Question, error) {
	body, err := json.Marshal(GenerateRequest{
		Category:     req.Topic.CategoryKey,
		Subtopic:     req.Topic.SubtopicTitle,
		QuestionType: string(req.Kind),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var env GenerateResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", question.ErrInvalidQuestion, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("endpoint reported failure: %s", env.Error)
	}
	if len(env.Question) == 0 {
		return nil, fmt.Errorf("%w: response has no question", question.ErrInvalidQuestion)
	}

	var tagged struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(env.Question, &tagged); err == nil && tagged.Type != "" && tagged.Type != string(req.Kind) {
		return nil, fmt.Errorf("%w: endpoint returned %s for a %s request", question.ErrInvalidQuestion, tagged.Type, req.Kind)
	}

	q, err := question.Decode(req.Kind, env.Question)
	if err != nil {
		return nil, err
	}
	if err := checkKind(req, q); err != nil {
		return nil, err
	}
	return q, nil
}
