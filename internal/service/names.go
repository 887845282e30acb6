package service

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var (
	copySuffix    = regexp.MustCompile(`^(.*?)(?:\s*\(\d+\))?$`)
	copySuffixNum = regexp.MustCompile(`\((\d+)\)$`)
)

// ValidatePersonName checks that name is non-empty and not already used,
// ignoring case, by another person of the current trip. excludeID names the
// person being renamed, or is empty for a new person.
func (s *TripService) ValidatePersonName(name, excludeID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyPersonName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.current()
	if trip == nil {
		return nil
	}
	for _, p := range trip.People {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			slog.Warn("Duplicate person name", "trip_id", trip.ID, "name", name)
			s.recorder.Rejected("duplicate_person_name")
			return ErrDuplicatePersonName
		}
	}
	return nil
}

// UniqueTripName returns name, trimmed, or name with a " (N)" suffix when a
// trip with the same base name exists. N is one more than the highest
// suffix already in use.
func (s *TripService) UniqueTripName(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make([]string, len(s.trips))
	for i, trip := range s.trips {
		existing[i] = trip.Name
	}
	return uniqueName(existing, name)
}

func uniqueName(existing []string, name string) string {
	name = strings.TrimSpace(name)
	base := baseName(name)

	found := false
	highest := 0
	for _, other := range existing {
		if baseName(other) != base {
			continue
		}
		found = true
		if m := copySuffixNum.FindStringSubmatch(other); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
				highest = n
			}
		}
	}
	if !found {
		return name
	}
	return fmt.Sprintf("%s (%d)", base, highest+1)
}

func baseName(name string) string {
	if m := copySuffix.FindStringSubmatch(name); m != nil && m[1] != "" {
		return m[1]
	}
	return name
}
