package models

import "time"

// Entry is the DB shape of a committed journal entry.
type Entry struct {
	EntryID        string    `db:"entry_id"`
	SequenceNumber int64     `db:"sequence_number"` // unique, gap-free
	EntryDate      time.Time `db:"entry_date"`
	Description    string    `db:"description"`
	AuthorID       string    `db:"author_id"`
	AuditFields
}
