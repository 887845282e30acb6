// Package models defines the core domain models for packlist.
//
// # Models
//
//   - Trip: a packing event with a date range, participants, categories and items
//   - Person: a participant who may be assigned items
//   - Item: a packable thing, optionally assigned to one person and categorized
//   - Progress: packed/total ratio, trip-wide or per person
//
// # Design Principles
//
// 1. **Snapshot shape**: JSON tags match the persisted layout field for field
// 2. **Avoid circular references**: Items reference people by ID string, never by pointer
// 3. **Denormalized counters**: Person.ItemCount and Person.PackedCount are stored, and only
// the service layer is allowed to change them
package models
