package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent is one lifecycle transition of a study session.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{JournalMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("mode").
			NotEmpty(),
		field.String("kind").
			NotEmpty().
			Comment("started, empty, finished or abandoned"),
		field.Int("position").
			Default(0).
			NonNegative(),
		field.Int("total").
			Default(0).
			NonNegative(),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
