package engine

import "github.com/tartampluch/go-calendar/internal/events"

// Contact is one date imported from an address book, as listed by the
// import command.
type Contact struct {
	// UID is a stable hash of the contact name and date.
	UID string

	// Name is the display name (formatted name, structured name or fallback).
	Name string

	// Key is the "MM-DD" key the record is stored under.
	Key string

	// Category is Birthday for BDAY and Anniversary for ANNIVERSARY.
	Category events.Category

	// OriginYear is the year of birth or wedding, 0 when the card omits it.
	OriginYear int
}

// Imported is the result of converting an address book into event records.
type Imported struct {
	Records  map[string]events.Record
	Contacts []Contact
	Stats    ImportStats
}

// ImportStats summarises an import for logs.
type ImportStats struct {
	Cards      int
	Dates      int
	Duplicates int
	Skipped    int
}
