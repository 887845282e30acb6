// Package progress derives packing progress and person counters from a trip's items.
// Everything here is pure: inputs are never modified.
package progress

import (
	"math"

	"github.com/mmynk/packlist/internal/models"
)

// Of computes the progress over all given items.
func Of(items []models.Item) models.Progress {
	packed := 0
	for _, item := range items {
		if item.IsPacked {
			packed++
		}
	}
	return models.Progress{
		Total:      len(items),
		Packed:     packed,
		Percentage: percentage(packed, len(items)),
	}
}

// ForPerson computes the progress over the items assigned to personID.
func ForPerson(items []models.Item, personID string) models.Progress {
	return Of(PersonItems(items, personID))
}

// ForCategory computes the progress over the items labelled with category.
func ForCategory(items []models.Item, category string) models.Progress {
	return Of(CategoryItems(items, category))
}

// PersonItems returns the items assigned to personID, in trip order.
func PersonItems(items []models.Item, personID string) []models.Item {
	var out []models.Item
	for _, item := range items {
		if item.AssignedTo == personID {
			out = append(out, item)
		}
	}
	return out
}

// CategoryItems returns the items labelled with category, in trip order.
func CategoryItems(items []models.Item, category string) []models.Item {
	var out []models.Item
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Categories lists the distinct non-empty item categories in first-seen order.
func Categories(items []models.Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

// percentage rounds half away from zero, like the browser's Math.round for
// non-negative inputs.
func percentage(packed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(packed) / float64(total) * 100))
}
