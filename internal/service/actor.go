package service

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller performing a mutation. It is
// built from the verified bearer credential by the handlers.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// IDRef returns the actor id as a nullable reference for log rows, nil for
// a zero actor.
func (a Actor) IDRef() *uuid.UUID {
	if a.ID == uuid.Nil {
		return nil
	}
	id := a.ID
	return &id
}

// OptionalUUID distinguishes an absent JSON field from an explicit null in
// patch-style requests (soldBy: null clears the link, a missing soldBy
// leaves it alone).
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
