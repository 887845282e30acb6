package progress

import (
	"testing"

	"github.com/mmynk/packlist/internal/models"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name  string
		items []models.Item
		want  models.Progress
	}{
		{
			name:  "no items - no division by zero",
			items: nil,
			want:  models.Progress{Total: 0, Packed: 0, Percentage: 0},
		},
		{
			name: "half packed",
			items: []models.Item{
				{ID: "i1", IsPacked: true},
				{ID: "i2"},
			},
			want: models.Progress{Total: 2, Packed: 1, Percentage: 50},
		},
		{
			name: "one of three rounds down",
			items: []models.Item{
				{ID: "i1", IsPacked: true},
				{ID: "i2"},
				{ID: "i3"},
			},
			want: models.Progress{Total: 3, Packed: 1, Percentage: 33},
		},
		{
			name: "two of three rounds up",
			items: []models.Item{
				{ID: "i1", IsPacked: true},
				{ID: "i2", IsPacked: true},
				{ID: "i3"},
			},
			want: models.Progress{Total: 3, Packed: 2, Percentage: 67},
		},
		{
			name: "one of eight rounds half up",
			items: []models.Item{
				{ID: "i1", IsPacked: true},
				{ID: "i2"}, {ID: "i3"}, {ID: "i4"},
				{ID: "i5"}, {ID: "i6"}, {ID: "i7"}, {ID: "i8"},
			},
			// 12.5 -> 13
			want: models.Progress{Total: 8, Packed: 1, Percentage: 13},
		},
		{
			name: "all packed",
			items: []models.Item{
				{ID: "i1", IsPacked: true},
			},
			want: models.Progress{Total: 1, Packed: 1, Percentage: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Of(tt.items)
			if got != tt.want {
				t.Errorf("Of() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestForPersonAndCategory(t *testing.T) {
	items := []models.Item{
		{ID: "i1", AssignedTo: "p1", Category: "Clothing", IsPacked: true},
		{ID: "i2", AssignedTo: "p1", Category: "Documents"},
		{ID: "i3", AssignedTo: "p2", Category: "Clothing"},
		{ID: "i4", Category: ""},
	}

	if got := ForPerson(items, "p1"); got != (models.Progress{Total: 2, Packed: 1, Percentage: 50}) {
		t.Errorf("ForPerson(p1) = %+v", got)
	}
	if got := ForPerson(items, "nobody"); got != (models.Progress{}) {
		t.Errorf("ForPerson(nobody) = %+v, want zero progress", got)
	}
	if got := ForCategory(items, "Clothing"); got != (models.Progress{Total: 2, Packed: 1, Percentage: 50}) {
		t.Errorf("ForCategory(Clothing) = %+v", got)
	}

	personItems := PersonItems(items, "p1")
	if len(personItems) != 2 || personItems[0].ID != "i1" || personItems[1].ID != "i2" {
		t.Errorf("PersonItems(p1) = %+v, want [i1 i2]", personItems)
	}

	categoryItems := CategoryItems(items, "Clothing")
	if len(categoryItems) != 2 || categoryItems[0].ID != "i1" || categoryItems[1].ID != "i3" {
		t.Errorf("CategoryItems(Clothing) = %+v, want [i1 i3]", categoryItems)
	}
}

func TestCategories(t *testing.T) {
	items := []models.Item{
		{Category: "Documents"},
		{Category: ""},
		{Category: "Clothing"},
		{Category: "Documents"},
	}
	got := Categories(items)
	if len(got) != 2 || got[0] != "Documents" || got[1] != "Clothing" {
		t.Errorf("Categories() = %v, want [Documents Clothing]", got)
	}
}

func TestRecountAndCheck(t *testing.T) {
	trip := models.Trip{
		People: []models.Person{
			{ID: "p1", Name: "Alex", ItemCount: 7, PackedCount: 9},
			{ID: "p2", Name: "Sam"},
		},
		Items: []models.Item{
			{ID: "i1", AssignedTo: "p1", IsPacked: true},
			{ID: "i2", AssignedTo: "p1"},
			{ID: "i3", AssignedTo: "p2", IsPacked: true},
			{ID: "i4"},
		},
	}

	if err := Check(trip); err == nil {
		t.Fatal("expected Check to report drifted counters")
	}

	Recount(&trip)

	if err := Check(trip); err != nil {
		t.Fatalf("Check after Recount: %v", err)
	}
	if trip.People[0].ItemCount != 2 || trip.People[0].PackedCount != 1 {
		t.Errorf("p1 counters = %d/%d, want 1/2", trip.People[0].PackedCount, trip.People[0].ItemCount)
	}
	if trip.People[1].ItemCount != 1 || trip.People[1].PackedCount != 1 {
		t.Errorf("p2 counters = %d/%d, want 1/1", trip.People[1].PackedCount, trip.People[1].ItemCount)
	}
}
