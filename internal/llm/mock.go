package llm

import (
	"context"
	"encoding/json"
	"maps"
	"sync"

	"github.com/abhisek/feprep/internal/question"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. A request whose context carries
// a question kind (see ForKind) is answered with that kind's payload when one
// is set, every time it is asked. Other requests take the next response from
// the FIFO queue. All requests are recorded in Calls.
type MockProvider struct {
	mu     sync.Mutex
	queue  []MockResponse
	byKind map[question.Kind]json.RawMessage
	Calls  []Request
}

// NewMockProvider creates a MockProvider serving responses in order.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewQuestionMock creates a MockProvider that answers each kind in payloads
// with its payload.
func NewQuestionMock(payloads map[question.Kind]json.RawMessage) *MockProvider {
	return &MockProvider{byKind: maps.Clone(payloads)}
}

// Generate serves the kind payload or the next queued response. An empty
// queue yields ErrProviderUnavailable.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if k, ok := KindFrom(ctx); ok {
		if payload, ok := m.byKind[k]; ok {
			return &Response{Content: payload, Model: "mock", StopReason: stopEnd}, nil
		}
	}

	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	resp := m.queue[0]
	m.queue = m.queue[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: stopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SamplePayloads returns one statics question per kind, shaped the way a
// model answers the generation schemas. The "mock" provider serves them so
// the app runs end to end without an API key.
func SamplePayloads() map[question.Kind]json.RawMessage {
	return map[question.Kind]json.RawMessage{
		question.KindMultipleChoice: json.RawMessage(`{
			"text": "Two forces of 3 kN and 4 kN act at right angles. Which statements about the resultant are true?",
			"options": ["Its magnitude is 5 kN", "Its magnitude is 7 kN", "It lies between the two forces", "It is parallel to the 4 kN force"],
			"correctAnswers": [0, 2],
			"explanation": "R = sqrt(3² + 4²) = 5 kN, directed between the two forces."
		}`),
		question.KindFillInBlank: json.RawMessage(`{
			"text": "A 10 kN force at 30° above horizontal has a horizontal component of _____ kN.",
			"correctAnswers": ["8.66", "8.7"],
			"explanation": "Fx = 10 cos 30° = 8.66 kN."
		}`),
		question.KindPointAndClick: json.RawMessage(`{
			"text": "A cantilever carries a point load at its free end. Points: A (free end), B (quarter span), C (midspan), D (fixed support). Click where the bending moment is largest.",
			"correctAnswer": "D",
			"correctAnswerLabel": "Fixed support",
			"explanation": "The moment grows linearly from the free end to the support."
		}`),
		question.KindDragAndDrop: json.RawMessage(`{
			"text": "Match each support to the reactions it provides.",
			"items": [{"id": "item1", "label": "Roller"}, {"id": "item2", "label": "Pin"}, {"id": "item3", "label": "Fixed"}],
			"dropzones": [{"id": "zone1", "label": "One force"}, {"id": "zone2", "label": "Two forces"}, {"id": "zone3", "label": "Two forces and a moment"}],
			"matches": [
				{"dropzoneId": "zone1", "itemId": "item1"},
				{"dropzoneId": "zone2", "itemId": "item2"},
				{"dropzoneId": "zone3", "itemId": "item3"}
			],
			"explanation": "Each added restraint adds a reaction."
		}`),
	}
}
