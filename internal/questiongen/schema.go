package questiongen

import (
	"github.com/abhisek/feprep/internal/llm"
	"github.com/abhisek/feprep/internal/question"
)

func stringProp() map[string]any { return map[string]any{"type": "string"} }

func slotArray() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":    stringProp(),
				"label": stringProp(),
			},
			"required":             []any{"id", "label"},
			"additionalProperties": false,
		},
	}
}

func objectSchema(props map[string]any, required ...any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// schemas holds the structured-output schema per kind. Every property is
// required and objects are closed so OpenAI strict mode accepts them.
// Drag-and-drop asks for a list of pairings instead of the payload's
// correctMatches map because strict mode has no free-form maps.
var schemas = map[question.Kind]*llm.Schema{
	question.KindMultipleChoice: {
		Name:        "multiple-choice-question",
		Description: "An FE Civil multiple-choice question with one or more correct options",
		Definition: objectSchema(map[string]any{
			"text": stringProp(),
			"options": map[string]any{
				"type":  "array",
				"items": stringProp(),
			},
			"correctAnswers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
			"explanation": stringProp(),
		}, "text", "options", "correctAnswers", "explanation"),
	},

	question.KindFillInBlank: {
		Name:        "fill-in-blank-question",
		Description: "An FE Civil fill-in-the-blank question with accepted answer variants",
		Definition: objectSchema(map[string]any{
			"text": stringProp(),
			"correctAnswers": map[string]any{
				"type":  "array",
				"items": stringProp(),
			},
			"explanation": stringProp(),
		}, "text", "correctAnswers", "explanation"),
	},

	question.KindPointAndClick: {
		Name:        "point-and-click-question",
		Description: "An FE Civil diagram question answered by picking hotspot A, B, C or D",
		Definition: objectSchema(map[string]any{
			"text": stringProp(),
			"correctAnswer": map[string]any{
				"type": "string",
				"enum": []any{"A", "B", "C", "D"},
			},
			"correctAnswerLabel": stringProp(),
			"explanation":        stringProp(),
		}, "text", "correctAnswer", "correctAnswerLabel", "explanation"),
	},

	question.KindDragAndDrop: {
		Name:        "drag-and-drop-question",
		Description: "An FE Civil matching question pairing items with drop zones",
		Definition: objectSchema(map[string]any{
			"text":      stringProp(),
			"items":     slotArray(),
			"dropzones": slotArray(),
			"matches": map[string]any{
				"type": "array",
				"items": objectSchema(map[string]any{
					"dropzoneId": stringProp(),
					"itemId":     stringProp(),
				}, "dropzoneId", "itemId"),
			},
			"explanation": stringProp(),
		}, "text", "items", "dropzones", "matches", "explanation"),
	},
}

// SchemaFor returns the structured-output schema used for kind.
func SchemaFor(kind question.Kind) *llm.Schema {
	return schemas[kind]
}
