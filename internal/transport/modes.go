// Package transport defines travel modes and the mandatory items each mode
// injects into a trip.
package transport

import "github.com/mmynk/packlist/internal/models"

// Mode is a travel mode with its checklist.
type Mode struct {
	Key          string
	Label        string
	Instructions []string

	// Items are injected into a trip that selects this mode. Every item is
	// marked IsMandatory and IsTransportRequired.
	Items []models.Item
}

var modes = []Mode{
	{
		Key:   "plane",
		Label: "Plane",
		Instructions: []string{
			"Passport/ID is mandatory",
			"Check airline baggage weight limits (usually 20-23kg)",
			"Liquids must be under 100ml",
			"Arrive 2-3 hours before departure",
			"Check visa requirements",
		},
		Items: []models.Item{
			required("passport", "Passport", "Documents"),
			required("boarding-pass", "Boarding Pass", "Documents"),
			required("travel-insurance", "Travel Insurance", "Documents"),
			required("visa", "Visa (if required)", "Documents"),
		},
	},
	{
		Key:   "car",
		Label: "Car",
		Instructions: []string{
			"Check vehicle documents",
			"Verify insurance coverage",
			"Check tire pressure and car condition",
			"Plan rest stops every 2 hours",
			"Pack emergency kit",
		},
		Items: []models.Item{
			required("drivers-license", "Driver's License", "Documents"),
			required("car-insurance", "Car Insurance", "Documents"),
			required("car-registration", "Car Registration", "Documents"),
			required("emergency-kit", "Emergency Kit", "Safety"),
		},
	},
	{
		Key:   "train",
		Label: "Train",
		Instructions: []string{
			"Check baggage size limits",
			"Arrive 30 minutes early",
			"Keep ticket accessible",
			"Note your seat/car number",
			"Check if food service available",
		},
		Items: []models.Item{
			required("train-ticket", "Train Ticket", "Documents"),
			required("id-card", "ID Card", "Documents"),
		},
	},
	{
		Key:   "ship",
		Label: "Ship",
		Instructions: []string{
			"Check boarding requirements",
			"Pack motion sickness remedies",
			"Verify passport/ID requirements",
			"Note emergency procedures",
			"Check weather conditions",
		},
		Items: []models.Item{
			required("ship-ticket", "Ship Ticket", "Documents"),
			required("passport-ship", "Passport", "Documents"),
			required("motion-sickness", "Motion Sickness Medicine", "Health"),
		},
	},
	{
		Key:   "bike",
		Label: "Bike",
		Instructions: []string{
			"Check bike condition",
			"Pack repair kit",
			"Wear protective gear",
			"Plan route carefully",
			"Check weather forecast",
		},
		Items: []models.Item{
			required("helmet", "Helmet", "Safety"),
			required("bike-repair", "Basic Repair Kit", "Equipment"),
			required("bike-lock", "Bike Lock", "Equipment"),
		},
	},
	{
		Key:   "bus",
		Label: "Bus",
		Instructions: []string{
			"Check luggage weight limits",
			"Arrive 15-30 minutes early",
			"Keep ticket and ID ready",
			"Note rest stop schedule",
			"Pack essential items in hand luggage",
		},
		Items: []models.Item{
			required("bus-ticket", "Bus Ticket", "Documents"),
			required("id-card-bus", "ID Card", "Documents"),
		},
	},
}

func required(id, name, category string) models.Item {
	return models.Item{
		ID:                  id,
		Name:                name,
		Category:            category,
		Quantity:            1,
		IsMandatory:         true,
		IsTransportRequired: true,
	}
}

// Modes returns every known travel mode in display order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// Lookup returns the mode with the given key.
func Lookup(key string) (Mode, bool) {
	for _, m := range modes {
		if m.Key == key {
			return m, true
		}
	}
	return Mode{}, false
}

// Label returns the display label of key, or key itself when it is not a known mode.
func Label(key string) string {
	if m, ok := Lookup(key); ok {
		return m.Label
	}
	return key
}

// MandatoryItems returns fresh copies of the items injected by the mode.
// Unknown modes inject nothing.
func MandatoryItems(key string) []models.Item {
	m, ok := Lookup(key)
	if !ok {
		return nil
	}
	return append([]models.Item{}, m.Items...)
}

// Merge returns the mode's mandatory items followed by the existing items
// without any previously injected transport item. User items and mandatory
// items that are not transport-specific are kept in order.
func Merge(existing []models.Item, key string) []models.Item {
	merged := MandatoryItems(key)
	for _, item := range existing {
		if item.Locked() {
			continue
		}
		merged = append(merged, item)
	}
	return merged
}
