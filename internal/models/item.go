package models

import "github.com/google/uuid"

// Item represents a single packable thing on a trip.
type Item struct {
	// ID is the unique identifier for the item. User-added items use UUIDs,
	// transportation template items use fixed keys (e.g., "passport").
	ID string `json:"id"`

	// Name is what to pack (e.g., "Sunscreen").
	Name string `json:"name"`

	// Category is an optional label, normally one of Trip.Categories.
	Category string `json:"category"`

	// AssignedTo is the ID of the person responsible, or "" when unassigned.
	AssignedTo string `json:"assignedTo"`

	// Quantity is at least 1.
	Quantity int `json:"quantity"`

	IsPacked bool   `json:"isPacked"`
	Notes    string `json:"notes,omitempty"`

	// IsMandatory and IsTransportRequired mark items injected by a
	// transportation template. Such items cannot be deleted.
	IsMandatory         bool `json:"isMandatory,omitempty"`
	IsTransportRequired bool `json:"isTransportRequired,omitempty"`
}

// NewItem creates an unassigned, unpacked item with a fresh ID.
// Quantities below 1 are raised to 1.
func NewItem(name, category string, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
		Quantity: quantity,
	}
}

// Locked reports whether the item was injected by a transportation template
// and must not be deleted.
func (i Item) Locked() bool {
	return i.IsMandatory && i.IsTransportRequired
}
