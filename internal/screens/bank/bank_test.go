package bank

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/feprep/internal/store"
)

type fakeRepo struct {
	store.QuestionRepo
	rows []store.BankQuestion
	err  error
}

func (r *fakeRepo) ListQuestions(context.Context, store.BankFilter) ([]store.BankQuestion, error) {
	return r.rows, r.err
}

func (r *fakeRepo) CountQuestions(context.Context, store.BankFilter) (int, error) {
	return len(r.rows), r.err
}

func load(t *testing.T, s *BankScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func bankRows() []store.BankQuestion {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return []store.BankQuestion{
		{
			ID: "old", Sequence: 1, CreatedAt: now, Category: "statics", Subtopic: "A",
			Kind: "fill-in-blank", Source: "llm",
			Payload: `{"text":"The resultant of 3 N and 4 N at right angles is _____ N.","correctAnswers":["5"]}`,
		},
		{
			ID: "new", Sequence: 2, CreatedAt: now.Add(time.Hour), Category: "statics", Subtopic: "A",
			Kind: "fill-in-blank", Source: "import", Payload: `{"text":""}`,
		},
	}
}

func TestBank_NewestFirst(t *testing.T) {
	s := New(&fakeRepo{rows: bankRows()})
	load(t, s)

	require.Len(t, s.entries, 2)
	assert.Equal(t, "new", s.entries[0].row.ID)
	assert.Nil(t, s.entries[0].q, "invalid payload should not decode")
	assert.Equal(t, "old", s.entries[1].row.ID)
	assert.NotNil(t, s.entries[1].q)
	assert.Equal(t, "2 stored  ", s.Status())
}

func TestBank_ExpandShowsAnswer(t *testing.T) {
	s := New(&fakeRepo{rows: bankRows()})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, s.expanded[1])

	view := s.View(100, 40)
	assert.Contains(t, view, "Answer:")
	assert.Contains(t, view, "source: llm")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, s.expanded[1])
}

func TestBank_CursorStaysInRange(t *testing.T) {
	s := New(&fakeRepo{rows: bankRows()})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, 1, s.selected)
}

func TestBank_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	assert.Contains(t, s.View(100, 20), "The bank is empty")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Empty(t, s.expanded)
}

func TestBank_LoadError(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("database is locked")})
	load(t, s)
	assert.Contains(t, s.View(100, 20), "database is locked")
	assert.Empty(t, s.Status())
}
