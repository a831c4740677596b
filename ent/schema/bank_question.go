package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// BankQuestion is a generated or imported question kept for reuse.
type BankQuestion struct {
	ent.Schema
}

func (BankQuestion) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID"),
		field.Int64("sequence").
			Unique().
			Immutable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.String("category").
			Comment("Catalog category key, e.g. statics"),
		field.String("subtopic").
			Comment("Subtopic letter within the category"),
		field.String("kind").
			Comment("Question kind name, e.g. fill-in-blank"),
		field.Text("payload").
			Comment("Question JSON in the codec wire format"),
		field.String("payload_hash").
			Unique().
			Comment("sha256 of kind and payload; duplicates are dropped"),
		field.String("source").
			Default("").
			Comment("llm, http or import"),
	}
}

func (BankQuestion) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("category", "subtopic", "kind"),
	}
}
