// Package storage provides abstractions for persisting trip snapshots.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/packlist/internal/models"
)

// ErrCorruptSnapshot is returned by Load when stored data cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the complete persisted state: every trip plus the ID of the
// currently selected one ("" when none is selected).
type Snapshot struct {
	Trips         []models.Trip
	CurrentTripID string
}

// Store defines the interface for snapshot persistence.
// This abstraction allows swapping storage backends (SQLite, files, etc.)
// without changing the service layer. A Store never changes trip state on
// its own initiative; it only serializes what it is given.
type Store interface {
	// Load reads the last saved snapshot. An empty store yields an empty
	// snapshot and no error.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
