// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/packlist/internal/models"
	"github.com/mmynk/packlist/internal/storage"
)

// Keys under which the snapshot is stored.
const (
	tripsKey         = "trips"
	currentTripIDKey = "currentTripId"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the trips and the current trip ID.
// Missing keys load as an empty collection and no selection.
func (s *SQLiteStore) Load(ctx context.Context) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{Trips: []models.Trip{}}

	raw, ok, err := s.get(ctx, tripsKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &snap.Trips); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", storage.ErrCorruptSnapshot, tripsKey, err)
		}
		if snap.Trips == nil {
			snap.Trips = []models.Trip{}
		}
	}

	currentID, ok, err := s.get(ctx, currentTripIDKey)
	if err != nil {
		return nil, err
	}
	if ok {
		snap.CurrentTripID = currentID
	}

	return snap, nil
}

// Save writes both keys in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *storage.Snapshot) error {
	trips := snap.Trips
	if trips == nil {
		trips = []models.Trip{}
	}
	encoded, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("failed to encode trips: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	if err := put(ctx, tx, tripsKey, string(encoded), now); err != nil {
		return err
	}

	if snap.CurrentTripID == "" {
		if _, err := tx.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", currentTripIDKey); err != nil {
			return fmt.Errorf("failed to clear %s: %w", currentTripIDKey, err)
		}
	} else if err := put(ctx, tx, currentTripIDKey, snap.CurrentTripID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func put(ctx context.Context, tx *sql.Tx, key, value string, now int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
