package models

import "github.com/google/uuid"

// Person represents a participant in a trip.
type Person struct {
	// ID is unique within a trip (UUID format).
	ID string `json:"id"`

	// Name is the display name. Unique case-insensitively within a trip,
	// checked by callers before the person is added.
	Name string `json:"name"`

	// ItemCount is the number of items assigned to this person.
	ItemCount int `json:"itemCount"`

	// PackedCount is the number of those items that are packed.
	// Always 0 <= PackedCount <= ItemCount.
	PackedCount int `json:"packedCount"`
}

// NewPerson creates a person with a fresh ID and zero counters.
func NewPerson(name string) Person {
	return Person{
		ID:   uuid.New().String(),
		Name: name,
	}
}
