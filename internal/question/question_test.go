package question

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/feprep/internal/catalog"
)

func sameLineMC() *MultipleChoice {
	return &MultipleChoice{
		Base:           Base{Text: "Which of the following equations represent the same line?"},
		Options:        []string{"y = 2x + 3", "2x - y + 3 = 0", "4x - 2y + 6 = 0", "y = x + 1.5"},
		CorrectAnswers: []int{0, 1, 2},
	}
}

func distanceFIB() *FillInBlank {
	return &FillInBlank{
		Base:           Base{Text: "The distance between points (3, 4) and (6, 8) is _____ units."},
		CorrectAnswers: []string{"5", "5.0"},
	}
}

func beamPAC() *PointAndClick {
	return &PointAndClick{
		Base:          Base{Text: "Where is the bending moment largest?"},
		CorrectAnswer: "B",
	}
}

func soilDnD() *DragAndDrop {
	return &DragAndDrop{
		Base:           Base{Text: "Match each test to the property it measures."},
		Items:          []Slot{{ID: "i1", Label: "Proctor"}, {ID: "i2", Label: "Atterberg"}},
		Dropzones:      []Slot{{ID: "z1", Label: "Compaction"}, {ID: "z2", Label: "Plasticity"}},
		CorrectMatches: map[string]string{"z1": "i1", "z2": "i2"},
	}
}

func TestEvaluate_MultipleChoice(t *testing.T) {
	q := sameLineMC()

	tests := []struct {
		name string
		sel  Selection
		want bool
	}{
		{"exact", Selection{0, 1, 2}, true},
		{"reordered", Selection{2, 0, 1}, true},
		{"subset", Selection{0, 1}, false},
		{"superset", Selection{0, 1, 2, 3}, false},
		{"empty", Selection{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(q, tt.sel))
		})
	}
}

func TestEvaluate_FillInBlank(t *testing.T) {
	q := distanceFIB()

	assert.True(t, Evaluate(q, Text("  5.0  ")))
	assert.True(t, Evaluate(q, Text("5")))
	assert.False(t, Evaluate(q, Text("six")))
	assert.False(t, Evaluate(q, Text("5.00")))
}

func TestEvaluate_FillInBlankCaseInsensitive(t *testing.T) {
	q := &FillInBlank{Base: Base{Text: "Unit of force?"}, CorrectAnswers: []string{"Newton"}}
	assert.True(t, Evaluate(q, Text("NEWTON")))
}

func TestEvaluate_PointAndClick(t *testing.T) {
	q := beamPAC()
	assert.True(t, Evaluate(q, Hotspot("B")))
	assert.False(t, Evaluate(q, Hotspot("b")))
	assert.False(t, Evaluate(q, Hotspot("A")))
}

func TestEvaluate_DragAndDrop(t *testing.T) {
	q := soilDnD()
	assert.True(t, Evaluate(q, Matches{"z1": "i1", "z2": "i2"}))
	assert.False(t, Evaluate(q, Matches{"z1": "i2", "z2": "i1"}))
	assert.False(t, Evaluate(q, Matches{"z1": "i1"}))
}

func TestEvaluate_MismatchedOrMissingAnswer(t *testing.T) {
	assert.False(t, Evaluate(sameLineMC(), nil))
	assert.False(t, Evaluate(sameLineMC(), Text("0")))
	assert.False(t, Evaluate(distanceFIB(), Selection{0}))
}

func TestSelectionToggle(t *testing.T) {
	s := Selection{}
	s = s.Toggle(1)
	s = s.Toggle(3)
	assert.True(t, s.Has(1))
	assert.True(t, s.Has(3))

	s2 := s.Toggle(1)
	assert.False(t, s2.Has(1))
	assert.True(t, s.Has(1), "toggle must not mutate the receiver")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func() Question
		field  string
	}{
		{"mc empty text", func() Question { q := sameLineMC(); q.Text = " "; return q }, "text"},
		{"mc one option", func() Question { q := sameLineMC(); q.Options = q.Options[:1]; q.CorrectAnswers = []int{0}; return q }, "options"},
		{"mc no correct", func() Question { q := sameLineMC(); q.CorrectAnswers = nil; return q }, "correctAnswers"},
		{"mc out of range", func() Question { q := sameLineMC(); q.CorrectAnswers = []int{4}; return q }, "correctAnswers"},
		{"mc duplicate", func() Question { q := sameLineMC(); q.CorrectAnswers = []int{1, 1}; return q }, "correctAnswers"},
		{"fib no variants", func() Question { q := distanceFIB(); q.CorrectAnswers = nil; return q }, "correctAnswers"},
		{"fib blank variant", func() Question { q := distanceFIB(); q.CorrectAnswers = []string{"5", ""}; return q }, "correctAnswers"},
		{"pac no answer", func() Question { q := beamPAC(); q.CorrectAnswer = ""; return q }, "correctAnswer"},
		{"pac lowercase label", func() Question { q := beamPAC(); q.CorrectAnswer = "b"; return q }, "correctAnswer"},
		{"pac label off diagram", func() Question { q := beamPAC(); q.CorrectAnswer = "E"; return q }, "correctAnswer"},
		{"pac answer is a caption", func() Question { q := beamPAC(); q.CorrectAnswer = "fixed support"; return q }, "correctAnswer"},
		{"dnd duplicate item", func() Question { q := soilDnD(); q.Items[1].ID = "i1"; return q }, "items"},
		{"dnd unknown zone", func() Question { q := soilDnD(); q.CorrectMatches = map[string]string{"z9": "i1"}; return q }, "correctMatches"},
		{"dnd item reused", func() Question { q := soilDnD(); q.CorrectMatches = map[string]string{"z1": "i1", "z2": "i1"}; return q }, "correctMatches"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate().Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuestion)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	for _, q := range []Question{sameLineMC(), distanceFIB(), beamPAC(), soilDnD()} {
		assert.NoError(t, q.Validate(), "%s should be valid", q.Kind())
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Fill-In-Blank ")
	require.NoError(t, err)
	assert.Equal(t, KindFillInBlank, k)

	_, err = ParseKind("essay")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecode(t *testing.T) {
	raw := "Here is your question:\n```json\n" +
		`{"text": "A 5 kN force is applied at 45°. The horizontal component is _____ kN.", "correctAnswers": ["3.54", "3.5"], "explanation": "5 cos 45°"}` +
		"\n```"

	q, err := Decode(KindFillInBlank, []byte(raw))
	require.NoError(t, err)

	fib, ok := q.(*FillInBlank)
	require.True(t, ok)
	assert.Equal(t, []string{"3.54", "3.5"}, fib.CorrectAnswers)
	assert.Equal(t, "5 cos 45°", fib.Explanation)
	assert.Zero(t, fib.ID)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(KindMultipleChoice, []byte("no json here"))
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	_, err = Decode(KindMultipleChoice, []byte(`{"text": "q", "options": ["a", "b"], "correctAnswers": [5]}`))
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	_, err = Decode(KindMultipleChoice, []byte(`{"text": "q", "options": "a"}`))
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	_, err = Decode(Kind("essay"), []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecode_PointAndClickMustBeClickable(t *testing.T) {
	for _, answer := range []string{"b", "E", "fixed support"} {
		_, err := Decode(KindPointAndClick, []byte(`{"text":"Click the support.","correctAnswer":"`+answer+`"}`))
		assert.ErrorIs(t, err, ErrInvalidQuestion, "correctAnswer %q", answer)
	}

	for _, label := range HotspotLabels {
		q, err := Decode(KindPointAndClick, []byte(`{"text":"Click the support.","correctAnswer":"`+label+`"}`))
		require.NoError(t, err)
		assert.True(t, Evaluate(q, Hotspot(label)), "hotspot %s should score", label)
	}
}

func TestEncodeDecode_DragAndDrop(t *testing.T) {
	data, err := Encode(soilDnD())
	require.NoError(t, err)

	q, err := Decode(KindDragAndDrop, data)
	require.NoError(t, err)
	assert.Equal(t, soilDnD().CorrectMatches, q.(*DragAndDrop).CorrectMatches)
}

func TestSet_AppendAssignsIDs(t *testing.T) {
	s := NewSet(catalog.Topic{CategoryKey: "mathematics", SubtopicID: "A"})

	id1, err := s.Append(sameLineMC())
	require.NoError(t, err)
	id2, err := s.Append(distanceFIB())
	require.NoError(t, err)

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.At(1).Common().ID)
}

func TestSet_SnapshotUnaffectedByAppend(t *testing.T) {
	s := NewSet(catalog.Topic{})
	_, err := s.Append(sameLineMC())
	require.NoError(t, err)

	snap := s.Questions()
	_, err = s.Append(distanceFIB())
	require.NoError(t, err)

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, s.Len())
}

func TestSet_RejectsInvalidAndReused(t *testing.T) {
	s := NewSet(catalog.Topic{})

	bad := sameLineMC()
	bad.CorrectAnswers = nil
	_, err := s.Append(bad)
	assert.ErrorIs(t, err, ErrInvalidQuestion)
	assert.Equal(t, 0, s.Len())

	q := distanceFIB()
	_, err = s.Append(q)
	require.NoError(t, err)
	_, err = s.Append(q)
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestSet_ClosedRejectsAppend(t *testing.T) {
	s := NewSet(catalog.Topic{})
	_, err := s.Append(sameLineMC())
	require.NoError(t, err)

	s.Close()
	assert.True(t, s.Closed())

	_, err = s.Append(distanceFIB())
	assert.ErrorIs(t, err, ErrSetClosed)
	assert.Equal(t, 1, s.Len())
}

func TestSeededSet(t *testing.T) {
	for _, key := range []string{"mathematics-A", "statics-A"} {
		topic, err := catalog.ParseKey(key)
		require.NoError(t, err)

		s, err := SeededSet(topic)
		require.NoError(t, err, key)
		require.Equal(t, 2, s.Len(), key)
		assert.Equal(t, KindMultipleChoice, s.At(0).Kind())
		assert.Equal(t, KindFillInBlank, s.At(1).Kind())
	}

	mc := mustSeed(t, "mathematics-A").At(0)
	assert.True(t, Evaluate(mc, Selection{0, 1, 2}))

	empty, err := SeededSet(catalog.Topic{CategoryKey: "ethics", SubtopicID: "B"})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func mustSeed(t *testing.T, key string) *Set {
	t.Helper()
	topic, err := catalog.ParseKey(key)
	require.NoError(t, err)
	s, err := SeededSet(topic)
	require.NoError(t, err)
	return s
}
