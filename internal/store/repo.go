package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM token usage by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// BankQuestion is a stored question payload.
type BankQuestion struct {
	ID        string
	Sequence  int64
	CreatedAt time.Time
	Category  string
	Subtopic  string
	Kind      string

	// Payload is the question JSON in the question codec's wire format.
	Payload string

	// Source records where the question came from: "llm", "http", "import".
	Source string
}

// BankFilter narrows bank queries. Empty fields match everything.
type BankFilter struct {
	Category string
	Subtopic string
	Kind     string
	Limit    int
}

// QuestionRepo stores generated and imported questions for reuse.
type QuestionRepo interface {
	// SaveQuestion stores q and reports whether it was new. Payloads already
	// in the bank are ignored.
	SaveQuestion(ctx context.Context, q BankQuestion) (bool, error)

	// ListQuestions returns matching questions oldest first.
	ListQuestions(ctx context.Context, f BankFilter) ([]BankQuestion, error)

	// CountQuestions returns the number of matching questions.
	CountQuestions(ctx context.Context, f BankFilter) (int, error)

	// DeleteQuestion removes a question by ID.
	DeleteQuestion(ctx context.Context, id string) error
}
