package question

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode parses a JSON payload of the given kind and validates it.
// Text around the outermost {...} object is ignored, so model replies that
// wrap the object in prose or code fences still decode.
func Decode(kind Kind, raw []byte) (Question, error) {
	obj, err := ExtractObject(string(raw))
	if err != nil {
		return nil, err
	}

	var q Question
	switch kind {
	case KindMultipleChoice:
		q = &MultipleChoice{}
	case KindFillInBlank:
		q = &FillInBlank{}
	case KindPointAndClick:
		q = &PointAndClick{}
	case KindDragAndDrop:
		q = &DragAndDrop{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err := json.Unmarshal([]byte(obj), q); err != nil {
		return nil, fmt.Errorf("%w: decode %s payload: %v", ErrInvalidQuestion, kind, err)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Encode serializes q into the payload format Decode accepts.
func Encode(q Question) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil question", ErrInvalidQuestion)
	}
	return json.Marshal(q)
}

// ExtractObject returns the substring from the first '{' to the last '}'.
func ExtractObject(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in payload", ErrInvalidQuestion)
	}
	return s[start : end+1], nil
}
