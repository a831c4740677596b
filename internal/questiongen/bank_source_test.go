package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/feprep/internal/llm"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:qg_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecorderThenBank(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	topic := staticsTopic(t)

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: fibJSON()},
		llm.MockResponse{Content: mcJSON()},
		llm.MockResponse{Content: fibJSON()},
	)
	rec := WithRecording(NewLLMSource(mock, DefaultConfig()), st.QuestionRepo(), "llm")

	for _, k := range []question.Kind{question.KindFillInBlank, question.KindMultipleChoice, question.KindFillInBlank} {
		_, err := rec.Generate(ctx, Request{Topic: topic, Kind: k})
		require.NoError(t, err)
	}

	n, err := st.QuestionRepo().CountQuestions(ctx, store.BankFilter{Category: "statics", Subtopic: "A"})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "identical payloads are stored once")

	entries, err := st.QuestionRepo().ListQuestions(ctx, store.BankFilter{Kind: "multiple-choice"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "llm", entries[0].Source)

	bank := NewBankSource(st.QuestionRepo())
	q, err := bank.Generate(ctx, Request{Topic: topic, Kind: question.KindMultipleChoice})
	require.NoError(t, err)
	assert.True(t, q.(*question.MultipleChoice).IsCorrectOption(0))
}

func TestRecorder_PassesErrorsThrough(t *testing.T) {
	st := openTestStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	rec := WithRecording(NewLLMSource(mock, DefaultConfig()), st.QuestionRepo(), "llm")

	_, err := rec.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindFillInBlank})
	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))

	n, err := st.QuestionRepo().CountQuestions(context.Background(), store.BankFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBankSource_Rotates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	topic := staticsTopic(t)

	for _, text := range []string{"first _____", "second _____"} {
		_, err := st.QuestionRepo().SaveQuestion(ctx, store.BankQuestion{
			Category: topic.CategoryKey,
			Subtopic: topic.SubtopicID,
			Kind:     string(question.KindFillInBlank),
			Payload:  fmt.Sprintf(`{"text":%q,"correctAnswers":["x"]}`, text),
			Source:   "import",
		})
		require.NoError(t, err)
	}

	bank := NewBankSource(st.QuestionRepo())
	var texts []string
	for range 3 {
		q, err := bank.Generate(ctx, Request{Topic: topic, Kind: question.KindFillInBlank})
		require.NoError(t, err)
		texts = append(texts, q.Common().Text)
	}
	assert.Equal(t, []string{"first _____", "second _____", "first _____"}, texts)
}

func TestBankSource_Empty(t *testing.T) {
	st := openTestStore(t)
	bank := NewBankSource(st.QuestionRepo())

	orch := NewOrchestrator(bank)
	set := question.NewSet(staticsTopic(t))
	_, err := orch.Fill(context.Background(), set, []question.Kind{question.KindDragAndDrop})
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
}

func TestBankSource_CorruptEntry(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	topic := staticsTopic(t)

	_, err := st.QuestionRepo().SaveQuestion(ctx, store.BankQuestion{
		Category: topic.CategoryKey,
		Subtopic: topic.SubtopicID,
		Kind:     string(question.KindPointAndClick),
		Payload:  `{"text":"q"}`,
	})
	require.NoError(t, err)

	_, err = NewBankSource(st.QuestionRepo()).Generate(ctx, Request{Topic: topic, Kind: question.KindPointAndClick})
	assert.ErrorIs(t, err, question.ErrInvalidQuestion)
}
