package domain

import "time"

// Entry represents a single, balanced journal entry (a "seat") composed of
// at least two postings. SequenceNumber is globally unique, monotonically
// increasing and assigned exactly once at commit time.
type Entry struct {
	EntryID        string    `json:"entryID"`
	SequenceNumber int64     `json:"sequenceNumber"`
	EntryDate      time.Time `json:"entryDate"`
	Description    string    `json:"description"`
	AuthorID       string    `json:"authorID"`
	AuditFields
}
