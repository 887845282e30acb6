package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mmynk/packlist/internal/models"
	"github.com/mmynk/packlist/internal/policy"
	"github.com/mmynk/packlist/internal/progress"
	"github.com/mmynk/packlist/internal/service"
	"github.com/mmynk/packlist/internal/transport"
)

const usage = `usage: packlist <command> [arguments]

trips                                   list trips
trip-add NAME START END [MODE]          create and select a trip (dates as YYYY-MM-DD)
trip-edit TRIP_ID NAME START END [MODE] rename a trip, move its dates or change its travel mode
trip-select TRIP_ID                     select a trip
trip-delete TRIP_ID                     delete a trip
trip-transport MODE                     change the travel mode of the current trip
person-add NAME                         add a person
person-rename PERSON_ID NAME            rename a person
person-delete PERSON_ID                 delete a person and unassign their items
item-add [flags] NAME                   add an item (-category, -assign, -qty, -notes)
item-assign ITEM_ID PERSON_ID|-         assign an item, "-" to unassign
item-pack ITEM_ID                       toggle the packed state of an item
item-delete ITEM_ID                     delete an item
category-add LABEL                      add a category
category-delete LABEL                   delete a category
show                                    summarize the current trip
check                                   verify person counters of every trip
modes                                   list travel modes
`

var (
	errUsage  = errors.New("invalid arguments")
	errNoTrip = errors.New("no trip selected, create one with trip-add or pick one with trip-select")
)

// now is the clock used to reject trips that start in the past.
var now = time.Now

type command func(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error

var commands = map[string]command{
	"trips":           listTrips,
	"trip-add":        addTrip,
	"trip-edit":       editTrip,
	"trip-select":     selectTrip,
	"trip-delete":     deleteTrip,
	"trip-transport":  changeTransport,
	"person-add":      addPerson,
	"person-rename":   renamePerson,
	"person-delete":   deletePerson,
	"item-add":        addItem,
	"item-assign":     assignItem,
	"item-pack":       packItem,
	"item-delete":     deleteItem,
	"category-add":    addCategory,
	"category-delete": deleteCategory,
	"show":            showTrip,
	"check":           checkTrips,
	"modes":           listModes,
}

// run dispatches args[0] to its command.
func run(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, svc, args[1:], out)
}

func wantArgs(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return errUsage
	}
	return nil
}

func currentTrip(svc *service.TripService) (models.Trip, error) {
	trip, ok := svc.CurrentTrip()
	if !ok {
		return models.Trip{}, errNoTrip
	}
	return trip, nil
}

func listTrips(_ context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 0, 0); err != nil {
		return err
	}
	current, _ := svc.CurrentTrip()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tDATES\tTRAVEL\tPACKED")
	for _, trip := range svc.Trips() {
		marker := ""
		if trip.ID == current.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s - %s\t%s\t%s\n",
			marker, trip.ID, trip.Name, trip.StartDate, trip.EndDate,
			transport.Label(trip.Transportation), formatProgress(progress.Of(trip.Items)))
	}
	return w.Flush()
}

func addTrip(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 3, 4); err != nil {
		return err
	}
	name, start, end := strings.TrimSpace(args[0]), args[1], args[2]
	if name == "" {
		return errors.New("please enter a trip name")
	}
	if err := validateTripDates(start, end); err != nil {
		return err
	}
	mode := ""
	if len(args) == 4 {
		mode = args[3]
		if _, ok := transport.Lookup(mode); !ok {
			return fmt.Errorf("unknown travel mode %q, see packlist modes", mode)
		}
	}

	trip := models.NewTrip(svc.UniqueTripName(name), start, end, "")
	svc.AddTrip(ctx, trip)
	if mode != "" {
		svc.ChangeTransportation(ctx, mode)
		fmt.Fprintf(out, "Added %d mandatory items for %s\n", len(transport.MandatoryItems(mode)), transport.Label(mode))
	}

	fmt.Fprintf(out, "Trip %q created: %s\n", trip.Name, trip.ID)
	return nil
}

func editTrip(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 4, 5); err != nil {
		return err
	}
	id, name, start, end := args[0], strings.TrimSpace(args[1]), args[2], args[3]

	var trip models.Trip
	found := false
	for _, t := range svc.Trips() {
		if t.ID == id {
			trip, found = t, true
			break
		}
	}
	if !found {
		return fmt.Errorf("trip %s not found", id)
	}
	if name == "" {
		return errors.New("please enter a trip name")
	}
	if err := validateTripDates(start, end); err != nil {
		return err
	}
	mode := trip.Transportation
	if len(args) == 5 {
		mode = args[4]
		if _, ok := transport.Lookup(mode); !ok && mode != models.NotSpecified {
			return fmt.Errorf("unknown travel mode %q, see packlist modes", mode)
		}
	}

	trip.Name, trip.StartDate, trip.EndDate = name, start, end
	svc.UpdateTrip(ctx, trip)
	if mode != trip.Transportation {
		svc.ChangeTripTransportation(ctx, trip.ID, mode)
		fmt.Fprintf(out, "Updated mandatory items for %s\n", transport.Label(mode))
	}

	fmt.Fprintf(out, "Updated trip: %s\n", name)
	return nil
}

func validateTripDates(start, end string) error {
	if err := models.ValidateDates(start, end); err != nil {
		return err
	}
	return models.ValidateStartDate(start, now())
}

func selectTrip(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	svc.SelectTrip(ctx, args[0])

	trip, ok := svc.CurrentTrip()
	if !ok || trip.ID != args[0] {
		return fmt.Errorf("trip %s not found", args[0])
	}
	fmt.Fprintf(out, "Switched to trip: %s\n", trip.Name)
	return nil
}

func deleteTrip(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	svc.DeleteTrip(ctx, args[0])
	fmt.Fprintf(out, "Trip %s deleted\n", args[0])
	return nil
}

func changeTransport(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	mode := args[0]
	if _, ok := transport.Lookup(mode); !ok && mode != models.NotSpecified {
		return fmt.Errorf("unknown travel mode %q, see packlist modes", mode)
	}

	svc.ChangeTransportation(ctx, mode)
	fmt.Fprintf(out, "Updated mandatory items for %s\n", transport.Label(mode))
	return nil
}

func addPerson(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	if err := svc.ValidatePersonName(args[0], ""); err != nil {
		return err
	}

	p := models.NewPerson(strings.TrimSpace(args[0]))
	svc.AddPerson(ctx, p)
	fmt.Fprintf(out, "Added %s: %s\n", p.Name, p.ID)
	return nil
}

func renamePerson(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 2, 2); err != nil {
		return err
	}
	trip, err := currentTrip(svc)
	if err != nil {
		return err
	}
	i := trip.FindPerson(args[0])
	if i < 0 {
		return fmt.Errorf("person %s not found", args[0])
	}
	if err := svc.ValidatePersonName(args[1], args[0]); err != nil {
		return err
	}

	p := trip.People[i]
	p.Name = strings.TrimSpace(args[1])
	svc.UpdatePerson(ctx, p)
	fmt.Fprintf(out, "Renamed to %s\n", p.Name)
	return nil
}

func deletePerson(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	svc.DeletePerson(ctx, args[0])
	fmt.Fprintf(out, "Person %s deleted\n", args[0])
	return nil
}

func addItem(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("item-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "category label")
	assign := fs.String("assign", "", "person ID")
	qty := fs.Int("qty", 1, "quantity")
	notes := fs.String("notes", "", "notes")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := wantArgs(fs.Args(), 1, 1); err != nil {
		return err
	}

	trip, err := currentTrip(svc)
	if err != nil {
		return err
	}
	name := fs.Arg(0)
	if err := policy.CheckItemName(name); err != nil {
		return err
	}
	if *assign != "" && trip.FindPerson(*assign) < 0 {
		return fmt.Errorf("person %s not found", *assign)
	}
	if *category != "" && !trip.HasCategory(*category) {
		svc.AddCategory(ctx, *category)
	}

	item := models.NewItem(strings.TrimSpace(name), *category, *qty)
	item.AssignedTo = *assign
	item.Notes = strings.TrimSpace(*notes)
	svc.AddItem(ctx, item)

	fmt.Fprintf(out, "Added %s: %s\n", item.Name, item.ID)
	return nil
}

func assignItem(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 2, 2); err != nil {
		return err
	}
	trip, err := currentTrip(svc)
	if err != nil {
		return err
	}
	i := trip.FindItem(args[0])
	if i < 0 {
		return fmt.Errorf("item %s not found", args[0])
	}

	item := trip.Items[i]
	item.AssignedTo = args[1]
	if item.AssignedTo == "-" {
		item.AssignedTo = ""
	} else if trip.FindPerson(item.AssignedTo) < 0 {
		return fmt.Errorf("person %s not found", item.AssignedTo)
	}

	svc.UpdateItem(ctx, item)
	fmt.Fprintf(out, "Updated %s\n", item.Name)
	return nil
}

func packItem(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	svc.ToggleItemPacked(ctx, args[0])

	trip, _ := svc.CurrentTrip()
	i := trip.FindItem(args[0])
	if i < 0 {
		return fmt.Errorf("item %s not found", args[0])
	}
	fmt.Fprintf(out, "%s %s\n", packedMark(trip.Items[i].IsPacked), trip.Items[i].Name)
	return nil
}

func deleteItem(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	if err := svc.DeleteItem(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "Item %s deleted\n", args[0])
	return nil
}

func addCategory(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	label := strings.TrimSpace(args[0])
	if label == "" {
		return errors.New("please enter a category name")
	}
	svc.AddCategory(ctx, label)
	fmt.Fprintf(out, "Category %q added\n", label)
	return nil
}

func deleteCategory(ctx context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	if _, err := currentTrip(svc); err != nil {
		return err
	}
	svc.DeleteCategory(ctx, args[0])
	fmt.Fprintf(out, "Category %q deleted\n", args[0])
	return nil
}

func showTrip(_ context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 0, 0); err != nil {
		return err
	}
	trip, err := currentTrip(svc)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s - %s)\n", trip.Name, trip.StartDate, trip.EndDate)
	fmt.Fprintf(out, "Travel: %s\n", transport.Label(trip.Transportation))
	fmt.Fprintf(out, "Packed: %s\n\n", formatProgress(svc.PackingProgress()))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PERSON\tID\tPACKED")
	for _, p := range trip.People {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.ID, formatProgress(svc.PersonProgress(p.ID)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CATEGORY\tPACKED\t")
	for _, c := range progress.Categories(trip.Items) {
		fmt.Fprintf(w, "%s\t%s\t\n", c, formatProgress(progress.ForCategory(trip.Items, c)))
	}
	fmt.Fprintln(w)

	names := make(map[string]string, len(trip.People))
	for _, p := range trip.People {
		names[p.ID] = p.Name
	}
	fmt.Fprintln(w, "\tITEM\tID\tQTY\tASSIGNED\tNOTES")
	for _, item := range trip.Items {
		assigned, ok := names[item.AssignedTo]
		if !ok {
			assigned = "Unassigned"
		}
		name := item.Name
		if item.Locked() {
			name += " (required)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			packedMark(item.IsPacked), name, item.ID, item.Quantity, assigned, item.Notes)
	}
	return w.Flush()
}

func checkTrips(_ context.Context, svc *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 0, 0); err != nil {
		return err
	}
	var errs []error
	for _, trip := range svc.Trips() {
		if err := progress.Check(trip); err != nil {
			errs = append(errs, fmt.Errorf("trip %s: %w", trip.ID, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	fmt.Fprintln(out, "All counters consistent")
	return nil
}

func listModes(_ context.Context, _ *service.TripService, args []string, out io.Writer) error {
	if err := wantArgs(args, 0, 0); err != nil {
		return err
	}
	for _, m := range transport.Modes() {
		fmt.Fprintf(out, "%s (%s)\n", m.Key, m.Label)
		for _, line := range m.Instructions {
			fmt.Fprintf(out, "  - %s\n", line)
		}
		names := make([]string, len(m.Items))
		for i, item := range m.Items {
			names[i] = item.Name
		}
		fmt.Fprintf(out, "  required: %s\n", strings.Join(names, ", "))
	}
	return nil
}

// formatProgress renders "packed/total (percentage%)", or "No items".
func formatProgress(p models.Progress) string {
	if p.Total == 0 {
		return "No items"
	}
	return fmt.Sprintf("%d/%d (%d%%)", p.Packed, p.Total, p.Percentage)
}

func packedMark(packed bool) string {
	if packed {
		return "[x]"
	}
	return "[ ]"
}
