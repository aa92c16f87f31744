// Package medroster turns the visible text of doctor profile pages into
// structured professional records, then normalizes and validates a
// collection of records into a clean dataset.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/) or their
// role (heuristic/, clean/, crawl/).
package medroster
