package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for trip start and end dates.
const DateLayout = "2006-01-02"

// NotSpecified is the transportation label of a trip without a travel mode.
const NotSpecified = "Not specified"

// ErrInvalidDates is returned when a trip date range cannot be parsed or ends before it starts.
var ErrInvalidDates = errors.New("end date must be on or after the start date")

// ErrStartInPast is returned when a trip starts before the current day.
var ErrStartInPast = errors.New("start date cannot be in the past")

// Trip represents a packing event shared by a group of people.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Lisbon", "Lisbon (1)").
	Name string `json:"name"`

	// StartDate and EndDate are calendar dates in DateLayout.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// Transportation is a travel mode key (e.g., "plane") or NotSpecified.
	Transportation string `json:"transportation"`

	// Categories is an ordered set of distinct labels.
	Categories []string `json:"categories"`

	// People are the trip participants in insertion order.
	People []Person `json:"people"`

	// Items are the packable things in insertion order.
	Items []Item `json:"items"`
}

// DefaultCategories returns the category set every new trip starts with.
func DefaultCategories() []string {
	return []string{
		"Clothing",
		"Toiletries",
		"Electronics",
		"Documents",
		"Food & Drinks",
		"Miscellaneous",
	}
}

// NewTrip creates a trip with a fresh ID, no people, no items and the default categories.
// An empty transportation is recorded as NotSpecified.
func NewTrip(name, startDate, endDate, transportation string) Trip {
	if transportation == "" {
		transportation = NotSpecified
	}
	return Trip{
		ID:             uuid.New().String(),
		Name:           name,
		StartDate:      startDate,
		EndDate:        endDate,
		Transportation: transportation,
		Categories:     DefaultCategories(),
		People:         []Person{},
		Items:          []Item{},
	}
}

// ValidateDates checks that both dates parse and that end is not before start.
func ValidateDates(startDate, endDate string) error {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return ErrInvalidDates
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return ErrInvalidDates
	}
	if end.Before(start) {
		return ErrInvalidDates
	}
	return nil
}

// ValidateStartDate checks that startDate is not before the calendar day of
// today. Only the date part of today is compared.
func ValidateStartDate(startDate string, today time.Time) error {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return ErrInvalidDates
	}
	y, m, d := today.Date()
	if start.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return ErrStartInPast
	}
	return nil
}

// Clone returns a deep copy of the trip.
func (t Trip) Clone() Trip {
	c := t
	if t.Categories != nil {
		c.Categories = append([]string{}, t.Categories...)
	}
	if t.People != nil {
		c.People = append([]Person{}, t.People...)
	}
	if t.Items != nil {
		c.Items = append([]Item{}, t.Items...)
	}
	return c
}

// FindPerson returns the index of the person with the given ID, or -1.
func (t *Trip) FindPerson(personID string) int {
	for i := range t.People {
		if t.People[i].ID == personID {
			return i
		}
	}
	return -1
}

// FindItem returns the index of the item with the given ID, or -1.
func (t *Trip) FindItem(itemID string) int {
	for i := range t.Items {
		if t.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// HasCategory reports whether label is one of the trip's categories.
func (t *Trip) HasCategory(label string) bool {
	for _, c := range t.Categories {
		if c == label {
			return true
		}
	}
	return false
}
