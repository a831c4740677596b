package schema

import (
	"testing"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/feprep/internal/store"
)

func fieldNames(fields ...[]ent.Field) []string {
	var names []string
	for _, fs := range fields {
		for _, f := range fs {
			names = append(names, f.Descriptor().Name)
		}
	}
	return names
}

func columnNames(cols []*entschema.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// The store migrates hand-maintained tables; they must stay in step with
// these definitions.
func TestLLMRequestEventMatchesStoreTable(t *testing.T) {
	want := append([]string{"id"}, fieldNames(EventMixin{}.Fields(), LLMRequestEvent{}.Fields())...)
	assert.Equal(t, want, columnNames(store.LLMRequestEventsColumns))
}

func TestBankQuestionMatchesStoreTable(t *testing.T) {
	assert.Equal(t, fieldNames(BankQuestion{}.Fields()), columnNames(store.BankQuestionsColumns))
}
