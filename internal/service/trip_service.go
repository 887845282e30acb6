// Package service implements the trip aggregate: the in-memory trip
// collection, the current-trip selection and every mutation on them.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/packlist/internal/models"
	"github.com/mmynk/packlist/internal/progress"
	"github.com/mmynk/packlist/internal/storage"
	"github.com/mmynk/packlist/internal/transport"
)

// Policy violations. The messages are meant to be shown to the user as is.
var (
	ErrMandatoryItem       = errors.New("this item is mandatory for your transportation mode and cannot be removed")
	ErrDuplicatePersonName = errors.New("this name already exists")
	ErrEmptyPersonName     = errors.New("please enter a name")
)

// Recorder receives mutation events. *metrics.Metrics implements it.
type Recorder interface {
	Mutation(op string)
	Rejected(reason string)
	PersistFailed()
	TripCount(n int)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string) {}
func (nopRecorder) Rejected(string) {}
func (nopRecorder) PersistFailed() {}
func (nopRecorder) TripCount(int) {}

// Option configures a TripService.
type Option func(*TripService)

// WithRecorder routes mutation events to r.
func WithRecorder(r Recorder) Option {
	return func(s *TripService) {
		s.recorder = r
	}
}

// TripService owns the trip collection and the current selection.
//
// Person counters (ItemCount, PackedCount) are denormalized: every mutation
// adjusts them incrementally so that they always equal the counts derivable
// from the trip's items. Missing trips, people and items are silently
// ignored. Every applied mutation is written through to the store; a failed
// write is logged and does not undo the mutation.
type TripService struct {
	mu       sync.Mutex
	store    storage.Store
	recorder Recorder

	trips     []models.Trip
	currentID string
}

// NewTripService loads the last snapshot from store. A snapshot that cannot
// be loaded is replaced by an empty state.
func NewTripService(ctx context.Context, store storage.Store, opts ...Option) *TripService {
	s := &TripService{
		store:    store,
		recorder: nopRecorder{},
		trips:    []models.Trip{},
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load trips, starting empty", "error", err)
		s.recorder.TripCount(0)
		return s
	}

	for _, trip := range snap.Trips {
		s.trips = append(s.trips, normalize(trip))
	}
	if s.indexOf(snap.CurrentTripID) >= 0 {
		s.currentID = snap.CurrentTripID
	}
	s.recorder.TripCount(len(s.trips))

	slog.Info("Trips loaded", "count", len(s.trips), "current_trip_id", s.currentID)
	return s
}

// Trips returns a copy of every trip in insertion order.
func (s *TripService) Trips() []models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Trip, len(s.trips))
	for i, trip := range s.trips {
		out[i] = trip.Clone()
	}
	return out
}

// CurrentTrip returns a copy of the selected trip.
func (s *TripService) CurrentTrip() (models.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return models.Trip{}, false
	}
	return trip.Clone(), true
}

// AddTrip appends trip to the collection and selects it.
func (s *TripService) AddTrip(ctx context.Context, trip models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips = append(s.trips, normalize(trip))
	s.currentID = trip.ID

	slog.Debug("Trip added", "trip_id", trip.ID, "name", trip.Name)
	s.commit(ctx, "add_trip")
}

// UpdateTrip replaces the trip with the same ID. The whole trip is replaced,
// so callers must pass a complete value.
func (s *TripService) UpdateTrip(ctx context.Context, trip models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(trip.ID)
	if i < 0 {
		return
	}
	s.trips[i] = normalize(trip)

	slog.Debug("Trip updated", "trip_id", trip.ID)
	s.commit(ctx, "update_trip")
}

// DeleteTrip removes a trip. When it was selected, the first remaining trip
// becomes current, or none when the collection is empty.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(tripID)
	if i < 0 {
		return
	}
	s.trips = append(s.trips[:i], s.trips[i+1:]...)

	if s.currentID == tripID {
		s.currentID = ""
		if len(s.trips) > 0 {
			s.currentID = s.trips[0].ID
		}
	}

	slog.Debug("Trip deleted", "trip_id", tripID, "current_trip_id", s.currentID)
	s.commit(ctx, "delete_trip")
}

// SelectTrip makes the trip with the given ID current.
func (s *TripService) SelectTrip(ctx context.Context, tripID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(tripID) < 0 {
		return
	}
	s.currentID = tripID

	slog.Debug("Trip selected", "trip_id", tripID)
	s.commit(ctx, "select_trip")
}

// AddPerson appends person to the current trip. Name uniqueness is not
// checked here; see ValidatePersonName. The counters are derived from the
// trip's items, which is zero for a new ID.
func (s *TripService) AddPerson(ctx context.Context, person models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	setCounts(&person, trip.Items)
	trip.People = append(trip.People, person)

	slog.Debug("Person added", "trip_id", trip.ID, "person_id", person.ID, "name", person.Name)
	s.commit(ctx, "add_person")
}

// UpdatePerson replaces the person with the same ID. Counters passed by the
// caller are ignored and recomputed from the trip's items.
func (s *TripService) UpdatePerson(ctx context.Context, person models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	i := trip.FindPerson(person.ID)
	if i < 0 {
		return
	}
	trip.People[i] = person
	progress.Recount(trip)

	slog.Debug("Person updated", "trip_id", trip.ID, "person_id", person.ID)
	s.commit(ctx, "update_person")
}

// DeletePerson removes a person and unassigns every item assigned to them.
func (s *TripService) DeletePerson(ctx context.Context, personID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	i := trip.FindPerson(personID)
	if i < 0 {
		return
	}
	trip.People = append(trip.People[:i], trip.People[i+1:]...)

	unassigned := 0
	for j := range trip.Items {
		if trip.Items[j].AssignedTo == personID {
			trip.Items[j].AssignedTo = ""
			unassigned++
		}
	}

	slog.Debug("Person deleted", "trip_id", trip.ID, "person_id", personID, "unassigned_items", unassigned)
	s.commit(ctx, "delete_person")
}

// AddItem appends item to the current trip and credits its assignee.
// An assignee ID that matches nobody leaves the people untouched.
func (s *TripService) AddItem(ctx context.Context, item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	trip.Items = append(trip.Items, item)
	if item.AssignedTo != "" {
		credit(trip, item.AssignedTo, item.IsPacked)
	}

	slog.Debug("Item added", "trip_id", trip.ID, "item_id", item.ID, "assigned_to", item.AssignedTo)
	s.commit(ctx, "add_item")
}

// UpdateItem replaces the item with the same ID and moves the counters by
// the difference in assignee and packed state.
func (s *TripService) UpdateItem(ctx context.Context, item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	if !replaceItem(trip, item) {
		return
	}

	slog.Debug("Item updated", "trip_id", trip.ID, "item_id", item.ID)
	s.commit(ctx, "update_item")
}

// ToggleItemPacked flips the packed state of an item.
func (s *TripService) ToggleItemPacked(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	i := trip.FindItem(itemID)
	if i < 0 {
		return
	}
	item := trip.Items[i]
	item.IsPacked = !item.IsPacked
	replaceItem(trip, item)

	slog.Debug("Item toggled", "trip_id", trip.ID, "item_id", itemID, "packed", item.IsPacked)
	s.commit(ctx, "toggle_item")
}

// DeleteItem removes an item from the current trip and debits its assignee.
// Items injected by a transportation mode are kept and ErrMandatoryItem is
// returned.
func (s *TripService) DeleteItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return nil
	}
	return s.deleteItem(ctx, trip, itemID)
}

// RemoveItem is DeleteItem on any trip, selected or not.
func (s *TripService) RemoveItem(ctx context.Context, tripID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(tripID)
	if i < 0 {
		return nil
	}
	return s.deleteItem(ctx, &s.trips[i], itemID)
}

func (s *TripService) deleteItem(ctx context.Context, trip *models.Trip, itemID string) error {
	i := trip.FindItem(itemID)
	if i < 0 {
		return nil
	}
	item := trip.Items[i]
	if item.Locked() {
		slog.Warn("Refusing to delete mandatory item", "trip_id", trip.ID, "item_id", itemID, "name", item.Name)
		s.recorder.Rejected("mandatory_item")
		return ErrMandatoryItem
	}

	trip.Items = append(trip.Items[:i], trip.Items[i+1:]...)
	if item.AssignedTo != "" {
		debit(trip, item.AssignedTo, item.IsPacked)
	}

	slog.Debug("Item deleted", "trip_id", trip.ID, "item_id", itemID)
	s.commit(ctx, "delete_item")
	return nil
}

// AddCategory appends label to the current trip's categories unless it is
// already present.
func (s *TripService) AddCategory(ctx context.Context, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil || trip.HasCategory(label) {
		return
	}
	trip.Categories = append(trip.Categories, label)

	slog.Debug("Category added", "trip_id", trip.ID, "category", label)
	s.commit(ctx, "add_category")
}

// DeleteCategory removes label from the current trip's categories and
// clears it on every item that used it.
func (s *TripService) DeleteCategory(ctx context.Context, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}

	changed := false
	categories := trip.Categories[:0]
	for _, c := range trip.Categories {
		if c == label {
			changed = true
			continue
		}
		categories = append(categories, c)
	}
	trip.Categories = categories

	for i := range trip.Items {
		if trip.Items[i].Category == label {
			trip.Items[i].Category = ""
			changed = true
		}
	}
	if !changed {
		return
	}

	slog.Debug("Category deleted", "trip_id", trip.ID, "category", label)
	s.commit(ctx, "delete_category")
}

// ChangeTransportation switches the current trip to mode. Items injected by
// the previous mode are removed, debiting their assignees, and the new
// mode's mandatory items are put first. An unknown or empty mode leaves the
// trip with no transportation.
func (s *TripService) ChangeTransportation(ctx context.Context, mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return
	}
	s.changeTransportation(ctx, trip, mode)
}

// ChangeTripTransportation is ChangeTransportation for the trip with the
// given ID, which need not be the current one.
func (s *TripService) ChangeTripTransportation(ctx context.Context, tripID, mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(tripID)
	if i < 0 {
		return
	}
	s.changeTransportation(ctx, &s.trips[i], mode)
}

func (s *TripService) changeTransportation(ctx context.Context, trip *models.Trip, mode string) {
	for _, item := range trip.Items {
		if item.Locked() && item.AssignedTo != "" {
			debit(trip, item.AssignedTo, item.IsPacked)
		}
	}
	trip.Items = transport.Merge(trip.Items, mode)

	if _, ok := transport.Lookup(mode); ok {
		trip.Transportation = mode
	} else {
		trip.Transportation = models.NotSpecified
	}

	slog.Debug("Transportation changed", "trip_id", trip.ID, "transportation", trip.Transportation)
	s.commit(ctx, "change_transportation")
}

// PersonItems returns the current trip's items assigned to personID.
func (s *TripService) PersonItems(personID string) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return nil
	}
	return progress.PersonItems(trip.Items, personID)
}

// CategoryItems returns the current trip's items labelled with category.
func (s *TripService) CategoryItems(category string) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return nil
	}
	return progress.CategoryItems(trip.Items, category)
}

// PackingProgress returns the progress over the whole current trip.
func (s *TripService) PackingProgress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return models.Progress{}
	}
	return progress.Of(trip.Items)
}

// PersonProgress returns the progress over one person's items.
func (s *TripService) PersonProgress(personID string) models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return models.Progress{}
	}
	return progress.ForPerson(trip.Items, personID)
}

func (s *TripService) indexOf(tripID string) int {
	if tripID == "" {
		return -1
	}
	for i := range s.trips {
		if s.trips[i].ID == tripID {
			return i
		}
	}
	return -1
}

func (s *TripService) current() *models.Trip {
	i := s.indexOf(s.currentID)
	if i < 0 {
		return nil
	}
	return &s.trips[i]
}

// commit records a mutation and writes the snapshot through.
func (s *TripService) commit(ctx context.Context, op string) {
	s.recorder.Mutation(op)
	s.recorder.TripCount(len(s.trips))

	snap := &storage.Snapshot{
		Trips:         make([]models.Trip, len(s.trips)),
		CurrentTripID: s.currentID,
	}
	for i, trip := range s.trips {
		snap.Trips[i] = trip.Clone()
	}

	if err := s.store.Save(ctx, snap); err != nil {
		slog.Error("Failed to persist trips", "op", op, "error", err)
		s.recorder.PersistFailed()
	}
}

// replaceItem swaps in the updated item and adjusts counters. It reports
// false when no item has the same ID.
func replaceItem(trip *models.Trip, updated models.Item) bool {
	i := trip.FindItem(updated.ID)
	if i < 0 {
		return false
	}
	prev := trip.Items[i]

	switch {
	case prev.AssignedTo != updated.AssignedTo:
		if prev.AssignedTo != "" {
			debit(trip, prev.AssignedTo, prev.IsPacked)
		}
		if updated.AssignedTo != "" {
			credit(trip, updated.AssignedTo, updated.IsPacked)
		}
	case updated.AssignedTo != "" && prev.IsPacked != updated.IsPacked:
		repack(trip, updated.AssignedTo, updated.IsPacked)
	}

	trip.Items[i] = updated
	return true
}

// credit counts one more item, packed or not, for personID.
func credit(trip *models.Trip, personID string, packed bool) {
	i := trip.FindPerson(personID)
	if i < 0 {
		return
	}
	p := &trip.People[i]
	p.ItemCount++
	if packed {
		p.PackedCount++
	}
}

// debit counts one item less for personID. Counters never go below zero.
func debit(trip *models.Trip, personID string, packed bool) {
	i := trip.FindPerson(personID)
	if i < 0 {
		return
	}
	p := &trip.People[i]
	p.ItemCount = max(0, p.ItemCount-1)
	if packed {
		p.PackedCount = max(0, p.PackedCount-1)
	}
}

// repack moves PackedCount of personID after one of their items changed
// packed state.
func repack(trip *models.Trip, personID string, packed bool) {
	i := trip.FindPerson(personID)
	if i < 0 {
		return
	}
	p := &trip.People[i]
	if packed {
		p.PackedCount++
	} else {
		p.PackedCount = max(0, p.PackedCount-1)
	}
}

func setCounts(person *models.Person, items []models.Item) {
	c := progress.Count(items, person.ID)
	person.ItemCount = c.ItemCount
	person.PackedCount = c.PackedCount
}

// normalize deep-copies trip and replaces nil collections with empty ones so
// snapshots never encode null.
func normalize(trip models.Trip) models.Trip {
	trip = trip.Clone()
	if trip.Categories == nil {
		trip.Categories = []string{}
	}
	if trip.People == nil {
		trip.People = []models.Person{}
	}
	if trip.Items == nil {
		trip.Items = []models.Item{}
	}
	return trip
}
