package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/llm"
	"github.com/abhisek/feprep/internal/question"
)

func staticsTopic(t *testing.T) catalog.Topic {
	t.Helper()
	topic, err := catalog.Lookup("statics", "A")
	if err != nil {
		t.Fatalf("lookup topic: %v", err)
	}
	return topic
}

func mcJSON() json.RawMessage {
	return json.RawMessage(`{
		"text": "Two forces of 3 kN and 4 kN act at right angles. Which statements about the resultant are true?",
		"options": ["Its magnitude is 5 kN", "Its magnitude is 7 kN", "It lies between the two forces", "It is parallel to the 4 kN force"],
		"correctAnswers": [0, 2],
		"explanation": "R = sqrt(3² + 4²) = 5 kN, directed between the two forces."
	}`)
}

func fibJSON() json.RawMessage {
	return json.RawMessage(`{
		"text": "A 10 kN force at 30° above horizontal has a horizontal component of _____ kN.",
		"correctAnswers": ["8.66", "8.7"],
		"explanation": "Fx = 10 cos 30° = 8.66 kN."
	}`)
}

func pacJSON() json.RawMessage {
	return json.RawMessage(`{
		"text": "A cantilever carries a point load at its free end. Points: A (free end), B (quarter span), C (midspan), D (fixed support). Click where the moment is largest.",
		"correctAnswer": "D",
		"correctAnswerLabel": "Fixed support",
		"explanation": "The moment grows linearly from the free end to the support."
	}`)
}

func dndPairsJSON() json.RawMessage {
	return json.RawMessage(`{
		"text": "Match each support to the reactions it provides.",
		"items": [
			{"id": "item1", "label": "Roller"},
			{"id": "item2", "label": "Pin"},
			{"id": "item3", "label": "Fixed"}
		],
		"dropzones": [
			{"id": "zone1", "label": "One force"},
			{"id": "zone2", "label": "Two forces"},
			{"id": "zone3", "label": "Two forces and a moment"}
		],
		"matches": [
			{"dropzoneId": "zone1", "itemId": "item1"},
			{"dropzoneId": "zone2", "itemId": "item2"},
			{"dropzoneId": "zone3", "itemId": "item3"}
		],
		"explanation": "Each added restraint adds a reaction."
	}`)
}

func TestLLMSource_MultipleChoice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcJSON()})
	src := NewLLMSource(mock, DefaultConfig())

	q, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindMultipleChoice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mc, ok := q.(*question.MultipleChoice)
	if !ok {
		t.Fatalf("expected *MultipleChoice, got %T", q)
	}
	if len(mc.Options) != 4 || !mc.IsCorrectOption(2) || mc.IsCorrectOption(1) {
		t.Errorf("unexpected question: %+v", mc)
	}
	if mc.Common().ID != 0 {
		t.Errorf("generated question should not have an ID yet, got %d", mc.Common().ID)
	}
}

func TestLLMSource_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fibJSON()})
	src := NewLLMSource(mock, DefaultConfig())

	if _, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindFillInBlank}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.Calls[0]
	if call.System != systemPrompt {
		t.Error("expected the generator system prompt")
	}
	if call.Schema == nil || call.Schema.Name != "fill-in-blank-question" {
		t.Fatalf("expected fill-in-blank schema, got %+v", call.Schema)
	}
	if call.MaxTokens != 1024 || call.Temperature != 0.7 {
		t.Errorf("unexpected limits: max=%d temp=%v", call.MaxTokens, call.Temperature)
	}
	msg := call.Prompt
	for _, want := range []string{"fill-in-blank", "Statics - Resultants of Force Systems", "_____"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestLLMSource_PointAndClick(t *testing.T) {
	mock := llm.NewQuestionMock(map[question.Kind]json.RawMessage{question.KindPointAndClick: pacJSON()})
	src := NewLLMSource(mock, DefaultConfig())

	q, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindPointAndClick})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pac := q.(*question.PointAndClick); pac.CorrectAnswer != "D" {
		t.Errorf("expected D, got %q", pac.CorrectAnswer)
	}
}

func TestLLMSource_DragAndDropPairs(t *testing.T) {
	mock := llm.NewQuestionMock(map[question.Kind]json.RawMessage{question.KindDragAndDrop: dndPairsJSON()})
	src := NewLLMSource(mock, DefaultConfig())

	q, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindDragAndDrop})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dnd := q.(*question.DragAndDrop)
	want := map[string]string{"zone1": "item1", "zone2": "item2", "zone3": "item3"}
	if len(dnd.CorrectMatches) != len(want) {
		t.Fatalf("unexpected matches: %v", dnd.CorrectMatches)
	}
	for zone, item := range want {
		if dnd.CorrectMatches[zone] != item {
			t.Errorf("zone %s = %q, want %q", zone, dnd.CorrectMatches[zone], item)
		}
	}
	if dnd.Explanation == "" {
		t.Error("explanation dropped")
	}
}

func TestLLMSource_DragAndDropMapPassThrough(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"text": "Match",
		"items": [{"id": "i1", "label": "Sand"}, {"id": "i2", "label": "Clay"}],
		"dropzones": [{"id": "z1", "label": "Coarse"}, {"id": "z2", "label": "Fine"}],
		"correctMatches": {"z1": "i1", "z2": "i2"}
	}`)})
	src := NewLLMSource(mock, DefaultConfig())

	q, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindDragAndDrop})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.(*question.DragAndDrop).CorrectMatches["z2"] != "i2" {
		t.Error("correctMatches not preserved")
	}
}

func TestLLMSource_DuplicatePairingRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"text": "Match",
		"items": [{"id": "i1", "label": "a"}, {"id": "i2", "label": "b"}],
		"dropzones": [{"id": "z1", "label": "x"}, {"id": "z2", "label": "y"}],
		"matches": [{"dropzoneId": "z1", "itemId": "i1"}, {"dropzoneId": "z1", "itemId": "i2"}]
	}`)})
	src := NewLLMSource(mock, DefaultConfig())

	_, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindDragAndDrop})
	if !errors.Is(err, question.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestLLMSource_InvalidPayload(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"text":"Pick one","options":["only"],"correctAnswers":[0]}`)})
	src := NewLLMSource(mock, DefaultConfig())

	_, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindMultipleChoice})
	var verr *question.ValidationError
	if !errors.As(err, &verr) || verr.Field != "options" {
		t.Fatalf("expected options validation error, got %v", err)
	}
}

func TestLLMSource_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	src := NewLLMSource(mock, DefaultConfig())

	_, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: question.KindFillInBlank})
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestLLMSource_UnknownKind(t *testing.T) {
	mock := llm.NewMockProvider()
	src := NewLLMSource(mock, DefaultConfig())

	_, err := src.Generate(context.Background(), Request{Topic: staticsTopic(t), Kind: "essay"})
	if !errors.Is(err, question.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider should not be called, got %d calls", mock.CallCount())
	}
}

func TestSchemasCoverEveryKind(t *testing.T) {
	for _, k := range question.Kinds() {
		s := SchemaFor(k)
		if s == nil {
			t.Fatalf("no schema for %s", k)
		}
		props := s.Definition["properties"].(map[string]any)
		required := s.Definition["required"].([]any)
		if len(props) != len(required) {
			t.Errorf("%s: %d properties but %d required", k, len(props), len(required))
		}
		if s.Definition["additionalProperties"] != false {
			t.Errorf("%s: schema must be closed", k)
		}
		if kindInstructions[k] == "" || kindTemplates[k] == "" {
			t.Errorf("%s: missing prompt parts", k)
		}
	}
}
