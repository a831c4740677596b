package catalog

// Seed is a built-in question payload in the wire format the question codec
// decodes. Kind is the question kind name, e.g. "multiple-choice".
type Seed struct {
	Kind    string
	Payload string
}

// Seeds returns the built-in questions for a topic, or nil when it has none.
func Seeds(t Topic) []Seed {
	s := seeds[t.Key()]
	if len(s) == 0 {
		return nil
	}
	out := make([]Seed, len(s))
	copy(out, s)
	return out
}

var seeds = map[string][]Seed{
	"mathematics-A": {
		{
			Kind: "multiple-choice",
			Payload: `{
				"text": "Which of the following equations represent the same line? (Select all that apply)",
				"options": ["y = 2x + 3", "2x - y + 3 = 0", "4x - 2y + 6 = 0", "y = x + 1.5"],
				"correctAnswers": [0, 1, 2],
				"explanation": "Rearranging 2x - y + 3 = 0 gives y = 2x + 3, and 4x - 2y + 6 = 0 is the same equation multiplied by 2. y = x + 1.5 has a different slope."
			}`,
		},
		{
			Kind: "fill-in-blank",
			Payload: `{
				"text": "The distance between points (3, 4) and (6, 8) is _____ units.",
				"correctAnswers": ["5", "5.0"],
				"explanation": "d = sqrt((6-3)^2 + (8-4)^2) = sqrt(9 + 16) = 5."
			}`,
		},
	},
	"statics-A": {
		{
			Kind: "multiple-choice",
			Payload: `{
				"text": "A force of 100 N is applied at 30° to the horizontal. What are the vertical and horizontal components? (Select the correct pair)",
				"options": [
					"Horizontal: 50 N, Vertical: 86.6 N",
					"Horizontal: 86.6 N, Vertical: 50 N",
					"Horizontal: 70.7 N, Vertical: 70.7 N",
					"Horizontal: 100 N, Vertical: 0 N"
				],
				"correctAnswers": [1],
				"explanation": "Fx = 100 cos 30° = 86.6 N and Fy = 100 sin 30° = 50 N."
			}`,
		},
		{
			Kind: "fill-in-blank",
			Payload: `{
				"text": "A 5 kN force is applied at 45°. The horizontal component is _____ kN.",
				"correctAnswers": ["3.54", "3.5", "3.536"],
				"explanation": "Fx = 5 cos 45° = 3.536 kN."
			}`,
		},
	},
}
