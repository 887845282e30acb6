package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/packlist/internal/models"
	"github.com/mmynk/packlist/internal/policy"
	"github.com/mmynk/packlist/internal/service"
	"github.com/mmynk/packlist/internal/storage/sqlite"
)

func setupCLI(t *testing.T) *service.TripService {
	t.Helper()

	realNow := now
	now = func() time.Time { return time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = realNow })

	store, err := sqlite.New(filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return service.NewTripService(context.Background(), store)
}

func runOK(t *testing.T, svc *service.TripService, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	if err := run(context.Background(), svc, args, &out); err != nil {
		t.Fatalf("packlist %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestCLI_Workflow(t *testing.T) {
	svc := setupCLI(t)

	runOK(t, svc, "trip-add", "Lisbon", "2026-11-01", "2026-11-08", "plane")
	runOK(t, svc, "person-add", "Alex")

	trip, ok := svc.CurrentTrip()
	if !ok {
		t.Fatal("expected a current trip")
	}
	if len(trip.Items) != 4 {
		t.Fatalf("expected 4 plane items, got %d", len(trip.Items))
	}
	alex := trip.People[0].ID

	runOK(t, svc, "item-add", "-category", "Beach", "-assign", alex, "-qty", "2", "Towel")
	trip, _ = svc.CurrentTrip()
	towel := trip.Items[len(trip.Items)-1]
	if towel.Name != "Towel" || towel.Quantity != 2 || towel.AssignedTo != alex {
		t.Errorf("unexpected towel: %+v", towel)
	}
	if !trip.HasCategory("Beach") {
		t.Error("expected Beach category to be created")
	}

	runOK(t, svc, "item-pack", towel.ID)
	runOK(t, svc, "item-assign", "passport", alex)

	trip, _ = svc.CurrentTrip()
	if p := trip.People[0]; p.ItemCount != 2 || p.PackedCount != 1 {
		t.Errorf("Alex counters: expected 1/2, got %d/%d", p.PackedCount, p.ItemCount)
	}

	out := runOK(t, svc, "show")
	for _, want := range []string{"Lisbon", "Plane", "1/5 (20%)", "Alex", "Towel", "Passport (required)"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	out = runOK(t, svc, "check")
	if !strings.Contains(out, "consistent") {
		t.Errorf("unexpected check output: %s", out)
	}
}

func TestCLI_Rejections(t *testing.T) {
	svc := setupCLI(t)
	ctx := context.Background()
	var out bytes.Buffer

	if err := run(ctx, svc, []string{"person-add", "Alex"}, &out); !errors.Is(err, errNoTrip) {
		t.Errorf("person-add without trip: expected errNoTrip, got %v", err)
	}

	runOK(t, svc, "trip-add", "Oslo", "2026-12-01", "2026-12-03", "car")
	runOK(t, svc, "person-add", "Alex")

	if err := run(ctx, svc, []string{"person-add", "alex"}, &out); !errors.Is(err, service.ErrDuplicatePersonName) {
		t.Errorf("duplicate person: expected ErrDuplicatePersonName, got %v", err)
	}
	if err := run(ctx, svc, []string{"item-add", "Lighter fluid"}, &out); !errors.Is(err, policy.ErrRestrictedItem) {
		t.Errorf("restricted item: expected ErrRestrictedItem, got %v", err)
	}
	if err := run(ctx, svc, []string{"item-delete", "drivers-license"}, &out); !errors.Is(err, service.ErrMandatoryItem) {
		t.Errorf("mandatory item: expected ErrMandatoryItem, got %v", err)
	}
	if err := run(ctx, svc, []string{"trip-add", "Bad", "2026-12-03", "2026-12-01"}, &out); err == nil {
		t.Error("expected error for end date before start date")
	}
	if err := run(ctx, svc, []string{"bogus"}, &out); !errors.Is(err, errUsage) {
		t.Errorf("unknown command: expected errUsage, got %v", err)
	}
	if err := run(ctx, svc, nil, &out); !errors.Is(err, errUsage) {
		t.Errorf("no command: expected errUsage, got %v", err)
	}

	trip, _ := svc.CurrentTrip()
	if len(trip.People) != 1 || len(trip.Items) != 4 {
		t.Errorf("rejected commands changed state: %d people, %d items", len(trip.People), len(trip.Items))
	}
}

func TestCLI_DuplicateTripNames(t *testing.T) {
	svc := setupCLI(t)

	runOK(t, svc, "trip-add", "Trip", "2026-11-01", "2026-11-02")
	runOK(t, svc, "trip-add", "Trip", "2026-11-01", "2026-11-02")

	out := runOK(t, svc, "trips")
	if !strings.Contains(out, "Trip (1)") {
		t.Errorf("expected second trip to be renamed:\n%s", out)
	}
}

func TestCLI_PastStartDate(t *testing.T) {
	svc := setupCLI(t)
	var out bytes.Buffer

	err := run(context.Background(), svc, []string{"trip-add", "Past", "2001-01-01", "2001-01-02"}, &out)
	if !errors.Is(err, models.ErrStartInPast) {
		t.Errorf("expected ErrStartInPast, got %v", err)
	}
	if len(svc.Trips()) != 0 {
		t.Errorf("expected no trip to be created, got %d", len(svc.Trips()))
	}

	runOK(t, svc, "trip-add", "Today", "2026-10-01", "2026-10-02")
}

func TestCLI_EditTrip(t *testing.T) {
	svc := setupCLI(t)
	ctx := context.Background()
	var out bytes.Buffer

	runOK(t, svc, "trip-add", "Lisbon", "2026-11-01", "2026-11-08", "plane")
	runOK(t, svc, "person-add", "Alex")
	trip, _ := svc.CurrentTrip()
	alex := trip.People[0].ID
	runOK(t, svc, "item-add", "-assign", alex, "Towel")
	runOK(t, svc, "item-assign", "passport", alex)

	runOK(t, svc, "trip-add", "Oslo", "2026-12-01", "2026-12-03")

	runOK(t, svc, "trip-edit", trip.ID, " Porto ", "2026-11-02", "2026-11-09", "car")

	edited := findTrip(t, svc, trip.ID)
	if edited.Name != "Porto" || edited.StartDate != "2026-11-02" || edited.EndDate != "2026-11-09" {
		t.Errorf("unexpected edited trip: %s %s - %s", edited.Name, edited.StartDate, edited.EndDate)
	}
	if edited.Transportation != "car" || edited.FindItem("drivers-license") != 0 || edited.FindItem("passport") >= 0 {
		t.Errorf("expected car items to replace plane items, got %+v", edited.Items)
	}
	if p := edited.People[0]; p.ItemCount != 1 {
		t.Errorf("Alex items: expected 1 after the passport was removed, got %d", p.ItemCount)
	}
	if current, _ := svc.CurrentTrip(); current.Name != "Oslo" {
		t.Errorf("edit changed the current trip to %q", current.Name)
	}

	runOK(t, svc, "trip-edit", trip.ID, "Porto", "2026-11-02", "2026-11-10")
	edited = findTrip(t, svc, trip.ID)
	if edited.EndDate != "2026-11-10" || edited.Transportation != "car" || len(edited.Items) != 5 {
		t.Errorf("edit without mode changed items or mode: %s %+v", edited.Transportation, edited.Items)
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "past start", args: []string{"trip-edit", trip.ID, "Porto", "2001-01-01", "2001-01-02"}, want: models.ErrStartInPast},
		{name: "end before start", args: []string{"trip-edit", trip.ID, "Porto", "2026-11-09", "2026-11-02"}, want: models.ErrInvalidDates},
		{name: "missing args", args: []string{"trip-edit", trip.ID, "Porto"}, want: errUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(ctx, svc, tt.args, &out); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if err := run(ctx, svc, []string{"trip-edit", "missing", "X", "2026-11-02", "2026-11-03"}, &out); err == nil {
		t.Error("expected error for unknown trip")
	}

	edited = findTrip(t, svc, trip.ID)
	if edited.StartDate != "2026-11-02" || edited.EndDate != "2026-11-10" {
		t.Errorf("rejected edits changed the trip: %s - %s", edited.StartDate, edited.EndDate)
	}
	assertNoDrift(t, svc)
}

func findTrip(t *testing.T, svc *service.TripService, id string) models.Trip {
	t.Helper()

	for _, trip := range svc.Trips() {
		if trip.ID == id {
			return trip
		}
	}
	t.Fatalf("trip %s not found", id)
	return models.Trip{}
}

func assertNoDrift(t *testing.T, svc *service.TripService) {
	t.Helper()

	out := runOK(t, svc, "check")
	if !strings.Contains(out, "consistent") {
		t.Errorf("unexpected check output: %s", out)
	}
}
