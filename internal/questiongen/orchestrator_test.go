package questiongen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/llm"
	"github.com/abhisek/feprep/internal/question"
)

func TestFill_PartialFailureAppendsSuccesses(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: mcJSON()},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))
	set := question.NewSet(staticsTopic(t))

	added, err := orch.Fill(context.Background(), set, []question.Kind{question.KindMultipleChoice, question.KindFillInBlank})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, question.KindMultipleChoice, set.At(0).Kind())
	assert.Equal(t, 1, set.At(0).Common().ID)
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerate_ResultsInRequestOrder(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: []byte(`not json at all`)},
		llm.MockResponse{Content: fibJSON()},
		llm.MockResponse{Content: pacJSON()},
	)
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))
	kinds := []question.Kind{question.KindMultipleChoice, question.KindFillInBlank, question.KindPointAndClick}

	b := orch.Generate(context.Background(), staticsTopic(t), kinds)
	require.Len(t, b.Results, 3)
	for i, r := range b.Results {
		assert.Equal(t, kinds[i], r.Kind)
	}

	assert.Equal(t, []question.Kind{question.KindMultipleChoice}, b.Failed())
	assert.Len(t, b.Questions(), 2)

	var gerr *GenerationError
	require.ErrorAs(t, b.Results[0].Err, &gerr)
	assert.Equal(t, question.KindMultipleChoice, gerr.Kind)
	assert.ErrorIs(t, b.Results[0].Err, ErrGenerationFailed)
	assert.ErrorIs(t, b.Results[0].Err, question.ErrInvalidQuestion)
	assert.ErrorIs(t, b.Err(), ErrGenerationFailed)
}

func TestGenerate_EveryKindFromSamples(t *testing.T) {
	mock := llm.NewQuestionMock(llm.SamplePayloads())
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))

	b := orch.Generate(context.Background(), staticsTopic(t), question.Kinds())
	require.NoError(t, b.Err())
	require.Len(t, b.Questions(), len(question.Kinds()))
	for i, q := range b.Questions() {
		assert.Equal(t, question.Kinds()[i], q.Kind())
	}
	assert.Equal(t, "zone3", firstZoneFor(b.Questions()[3].(*question.DragAndDrop), "item3"))
}

func firstZoneFor(q *question.DragAndDrop, item string) string {
	for zone, it := range q.CorrectMatches {
		if it == item {
			return zone
		}
	}
	return ""
}

func TestFill_AllFailed(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
	)
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))
	set := question.NewSet(staticsTopic(t))

	added, err := orch.Fill(context.Background(), set, DefaultConfig().Kinds)
	assert.Zero(t, added)
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Zero(t, set.Len())
}

func TestFill_NoKinds(t *testing.T) {
	orch := NewOrchestrator(NewLLMSource(llm.NewMockProvider(), DefaultConfig()))
	_, err := orch.Fill(context.Background(), question.NewSet(staticsTopic(t)), nil)
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
}

func TestFill_AppendsNeverReplaces(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: mcJSON()},
		llm.MockResponse{Content: fibJSON()},
	)
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))
	set := question.NewSet(staticsTopic(t))

	_, err := orch.Fill(context.Background(), set, []question.Kind{question.KindMultipleChoice})
	require.NoError(t, err)
	_, err = orch.Fill(context.Background(), set, []question.Kind{question.KindFillInBlank})
	require.NoError(t, err)

	require.Equal(t, 2, set.Len())
	assert.Equal(t, question.KindMultipleChoice, set.At(0).Kind())
	assert.Equal(t, 2, set.At(1).Common().ID)
}

func TestAppendTo_ClosedSetIsNoOp(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcJSON()})
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))
	set := question.NewSet(staticsTopic(t))

	b := orch.Generate(context.Background(), set.Topic(), []question.Kind{question.KindMultipleChoice})
	set.Close()

	added, err := b.AppendTo(context.Background(), set)
	assert.ErrorIs(t, err, question.ErrSetClosed)
	assert.Zero(t, added)
	assert.Zero(t, set.Len())
}

func TestAppendTo_CancelledContextIsNoOp(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcJSON()})
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))
	set := question.NewSet(staticsTopic(t))

	ctx, cancel := context.WithCancel(context.Background())
	b := orch.Generate(ctx, set.Topic(), []question.Kind{question.KindMultipleChoice})
	cancel()

	added, err := b.AppendTo(ctx, set)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, added)
	assert.Zero(t, set.Len())
}

func TestAppendTo_TopicMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcJSON()})
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))

	b := orch.Generate(context.Background(), staticsTopic(t), []question.Kind{question.KindMultipleChoice})
	other, err := catalog.Lookup("mathematics", "A")
	require.NoError(t, err)

	_, err = b.AppendTo(context.Background(), question.NewSet(other))
	assert.Error(t, err)
}

func TestGenerate_StopsCallingSourceAfterCancel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcJSON()})
	orch := NewOrchestrator(NewLLMSource(mock, DefaultConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := orch.Generate(ctx, staticsTopic(t), DefaultConfig().Kinds)
	assert.Zero(t, mock.CallCount())
	require.Len(t, b.Results, 2)
	assert.ErrorIs(t, b.Results[1].Err, context.Canceled)
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("multiple-choice, drag-and-drop,multiple-choice")
	require.NoError(t, err)
	assert.Equal(t, []question.Kind{question.KindMultipleChoice, question.KindDragAndDrop, question.KindMultipleChoice}, kinds)

	all, err := ParseKinds("all")
	require.NoError(t, err)
	assert.Equal(t, question.Kinds(), all)

	_, err = ParseKinds("essay")
	assert.ErrorIs(t, err, question.ErrUnknownKind)

	_, err = ParseKinds(" ")
	assert.Error(t, err)
}
