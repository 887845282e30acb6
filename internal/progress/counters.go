package progress

import (
	"fmt"

	"github.com/mmynk/packlist/internal/models"
)

// Counts holds the derived counters of one person.
type Counts struct {
	ItemCount   int
	PackedCount int
}

// Count derives a person's counters from the items.
func Count(items []models.Item, personID string) Counts {
	var c Counts
	for _, item := range items {
		if item.AssignedTo != personID {
			continue
		}
		c.ItemCount++
		if item.IsPacked {
			c.PackedCount++
		}
	}
	return c
}

// Recount overwrites every person's counters in trip with the values derived
// from trip.Items.
func Recount(trip *models.Trip) {
	for i := range trip.People {
		c := Count(trip.Items, trip.People[i].ID)
		trip.People[i].ItemCount = c.ItemCount
		trip.People[i].PackedCount = c.PackedCount
	}
}

// Check verifies that every person's stored counters equal the derived ones
// and that 0 <= PackedCount <= ItemCount.
func Check(trip models.Trip) error {
	for _, p := range trip.People {
		c := Count(trip.Items, p.ID)
		if p.ItemCount != c.ItemCount || p.PackedCount != c.PackedCount {
			return fmt.Errorf("person %s (%s): stored %d/%d, derived %d/%d",
				p.ID, p.Name, p.PackedCount, p.ItemCount, c.PackedCount, c.ItemCount)
		}
		if p.PackedCount < 0 || p.PackedCount > p.ItemCount {
			return fmt.Errorf("person %s (%s): packed count %d out of range [0, %d]",
				p.ID, p.Name, p.PackedCount, p.ItemCount)
		}
	}
	return nil
}
