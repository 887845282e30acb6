package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/packlist/internal/metrics"
	"github.com/mmynk/packlist/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		input    string
		want     string
	}{
		{name: "no trips", existing: nil, input: "Lisbon", want: "Lisbon"},
		{name: "trims input", existing: nil, input: "  Lisbon ", want: "Lisbon"},
		{name: "first copy", existing: []string{"Lisbon"}, input: "Lisbon", want: "Lisbon (1)"},
		{name: "next copy", existing: []string{"Lisbon", "Lisbon (1)"}, input: "Lisbon", want: "Lisbon (2)"},
		{name: "gap uses highest", existing: []string{"Lisbon", "Lisbon (4)"}, input: "Lisbon", want: "Lisbon (5)"},
		{name: "input with suffix", existing: []string{"Lisbon (1)"}, input: "Lisbon (1)", want: "Lisbon (2)"},
		{name: "suffix without base trip", existing: []string{"Oslo"}, input: "Lisbon (3)", want: "Lisbon (3)"},
		{name: "different base", existing: []string{"Lisbon Coast"}, input: "Lisbon", want: "Lisbon"},
		{name: "suffix only", existing: []string{"(1)"}, input: "(1)", want: "(1) (2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uniqueName(tt.existing, tt.input); got != tt.want {
				t.Errorf("uniqueName(%v, %q) = %q, want %q", tt.existing, tt.input, got, tt.want)
			}
		})
	}
}

func TestUniqueTripName(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		name := svc.UniqueTripName("Trip")
		svc.AddTrip(ctx, models.NewTrip(name, "2026-11-01", "2026-11-02", ""))
	}

	trips := svc.Trips()
	want := []string{"Trip", "Trip (1)", "Trip (2)"}
	for i, name := range want {
		if trips[i].Name != name {
			t.Errorf("trip %d: expected %q, got %q", i, name, trips[i].Name)
		}
	}
}

func TestValidatePersonName(t *testing.T) {
	m := metrics.New()
	svc, _ := setupTestService(t, WithRecorder(m))
	_, people := setupTripWithPeople(t, svc, "Alex", "Sam")

	if err := svc.ValidatePersonName("Robin", ""); err != nil {
		t.Errorf("new name: expected nil, got %v", err)
	}
	if err := svc.ValidatePersonName("  ", ""); !errors.Is(err, ErrEmptyPersonName) {
		t.Errorf("blank name: expected ErrEmptyPersonName, got %v", err)
	}
	if err := svc.ValidatePersonName(" aLEX ", ""); !errors.Is(err, ErrDuplicatePersonName) {
		t.Errorf("duplicate name: expected ErrDuplicatePersonName, got %v", err)
	}
	// Renaming a person to a different casing of their own name is allowed.
	if err := svc.ValidatePersonName("ALEX", people[0].ID); err != nil {
		t.Errorf("self rename: expected nil, got %v", err)
	}
	if err := svc.ValidatePersonName("sam", people[0].ID); !errors.Is(err, ErrDuplicatePersonName) {
		t.Errorf("rename onto another person: expected ErrDuplicatePersonName, got %v", err)
	}

	if got := testutil.ToFloat64(m.Rejections.WithLabelValues("duplicate_person_name")); got != 2 {
		t.Errorf("expected 2 rejections recorded, got %v", got)
	}
}
