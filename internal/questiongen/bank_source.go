package questiongen

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/store"
)

// BankSource implements Source from questions saved in the local bank.
// Repeated requests for the same topic and kind cycle through the stored
// entries in insertion order.
type BankSource struct {
	repo store.QuestionRepo

	mu     sync.Mutex
	cursor map[string]int
}

// NewBankSource creates a BankSource reading from repo.
func NewBankSource(repo store.QuestionRepo) *BankSource {
	return &BankSource{repo: repo, cursor: make(map[string]int)}
}

// Generate returns the next stored question for the topic and kind.
func (s *BankSource) Generate(ctx context.Context, req Request) (question.Question, error) {
	entries, err := s.repo.ListQuestions(ctx, store.BankFilter{
		Category: req.Topic.CategoryKey,
		Subtopic: req.Topic.SubtopicID,
		Kind:     string(req.Kind),
	})
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("bank has no %s questions for %s", req.Kind, req.Topic.Key())
	}

	key := req.Topic.Key() + "/" + string(req.Kind)
	s.mu.Lock()
	i := s.cursor[key] % len(entries)
	s.cursor[key] = i + 1
	s.mu.Unlock()

	entry := entries[i]
	q, err := question.Decode(req.Kind, []byte(entry.Payload))
	if err != nil {
		return nil, fmt.Errorf("bank entry %s: %w", entry.ID, err)
	}
	return q, nil
}
