package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/feprep/internal/question"
)

const systemPrompt = `You are an expert FE Civil exam question generator writing practice items for the computer-based FE Civil exam.

Rules:
- Generate exactly one question of the requested type about the given topic.
- Questions must be technically correct and answerable without external references beyond the FE Reference Handbook.
- Use plain text. Write units explicitly (kN, m, psi, m³/s).
- The explanation should show the reasoning or calculation that leads to the correct answer.
- Return only the JSON object described in the request. No markdown, no code fences.`

var kindInstructions = map[question.Kind]string{
	question.KindMultipleChoice: `For Multiple Choice:
- Create exactly 4 options
- One or more options should be correct
- Incorrect options should be plausible but wrong
- Include common misconceptions
- correctAnswers holds the 0-based indices of every correct option`,

	question.KindFillInBlank: `For Fill in Blank:
- Create a question with a single blank space written as _____
- Answer should be numerical (with units) or short text
- Accept multiple answer variations in correctAnswers`,

	question.KindPointAndClick: `For Point and Click:
- Describe an engineering diagram with labeled clickable areas
- Must have 4 hotspots labeled A, B, C, D and the text must say what each label marks
- correctAnswer is the label of the correct location`,

	question.KindDragAndDrop: `For Drag and Drop:
- Create 3-5 items to be matched to categories or definitions
- Create the same number of drop zones
- Each item matches exactly one drop zone and each drop zone takes exactly one item
- List every pairing in matches`,
}

var kindTemplates = map[question.Kind]string{
	question.KindMultipleChoice: `{
  "text": "Question text here",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correctAnswers": [0, 2],
  "explanation": "Why these answers are correct"
}`,

	question.KindFillInBlank: `{
  "text": "The distance between points (3, 4) and (6, 8) is _____ units.",
  "correctAnswers": ["5", "5.0"],
  "explanation": "Using the distance formula..."
}`,

	question.KindPointAndClick: `{
  "text": "A cantilever beam is shown with points A (free end), B (midspan), C (fixed support) and D (load point). Click where the bending moment is largest.",
  "correctAnswer": "C",
  "correctAnswerLabel": "At the fixed support",
  "explanation": "This is the correct location because..."
}`,

	question.KindDragAndDrop: `{
  "text": "Match items to categories",
  "items": [
    {"id": "item1", "label": "Item 1"},
    {"id": "item2", "label": "Item 2"}
  ],
  "dropzones": [
    {"id": "zone1", "label": "Category 1"},
    {"id": "zone2", "label": "Category 2"}
  ],
  "matches": [
    {"dropzoneId": "zone1", "itemId": "item1"},
    {"dropzoneId": "zone2", "itemId": "item2"}
  ],
  "explanation": "Explanation here"
}`,
}

// buildUserMessage describes the requested question for one topic and kind.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a single %s question for the FE Civil CBT exam.\n\n", req.Kind)
	fmt.Fprintf(&b, "Topic: %s - %s\n\n", req.Topic.CategoryTitle, req.Topic.SubtopicTitle)
	b.WriteString(kindInstructions[req.Kind])
	b.WriteString("\n\nReturn ONLY valid JSON (no markdown, no code blocks):\n")
	b.WriteString(kindTemplates[req.Kind])

	return b.String()
}
