package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// SyncFailure is a progress write the backend never acknowledged.
type SyncFailure struct {
	ent.Schema
}

func (SyncFailure) Mixin() []ent.Mixin {
	return []ent.Mixin{JournalMixin{}}
}

func (SyncFailure) Fields() []ent.Field {
	return []ent.Field{
		field.Int("card_id"),
		field.String("status").
			NotEmpty(),
		field.String("cause").
			Default(""),
	}
}
