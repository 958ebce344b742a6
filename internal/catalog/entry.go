package catalog

import (
	"encoding/json"
	"strings"
	"time"
)

// Entry is either a RecordEntry or a SubmissionEntry. The interface is
// sealed; build values with FromRecord and FromSubmission.
type Entry interface {
	Key() string
	Base() Marking
	Info() Details
	Valuation() string
	Created() time.Time
	isEntry()
}

// RecordEntry wraps a catalog record.
type RecordEntry struct {
	Record Record
}

// SubmissionEntry wraps a submission.
type SubmissionEntry struct {
	Submission Submission
}

func FromRecord(r Record) Entry {
	return RecordEntry{Record: r}
}

func FromSubmission(s Submission) Entry {
	return SubmissionEntry{Submission: s}
}

// FromRecords adapts a slice of records.
func FromRecords(records []Record) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out
}


func (e RecordEntry) Key() string        { return e.Record.ID }
func (e RecordEntry) Base() Marking      { return e.Record.Marking }
func (e RecordEntry) Info() Details      { return e.Record.Details }
func (e RecordEntry) Valuation() string  { return e.Record.Valuation }
func (e RecordEntry) Created() time.Time { return e.Record.CreatedAt }
func (RecordEntry) isEntry()             {}

// MarshalJSON encodes the wrapped record as is.
func (e RecordEntry) MarshalJSON() ([]byte, error) { return json.Marshal(e.Record) }

func (e SubmissionEntry) Key() string        { return e.Submission.ID }
func (e SubmissionEntry) Base() Marking      { return e.Submission.Marking }
func (e SubmissionEntry) Info() Details      { return e.Submission.Details }
func (SubmissionEntry) Valuation() string    { return "" }
func (e SubmissionEntry) Created() time.Time { return e.Submission.CreatedAt }
func (SubmissionEntry) isEntry()             {}

// MarshalJSON encodes the wrapped submission as is.
func (e SubmissionEntry) MarshalJSON() ([]byte, error) { return json.Marshal(e.Submission) }

// RarityLabel returns the rarity, else the valuation, else "".
func RarityLabel(e Entry) string {
	if r := strings.TrimSpace(e.Info().Rarity); r != "" {
		return r
	}
	return strings.TrimSpace(e.Valuation())
}
