// Package catalog holds the postal-marking domain types shared by the server
// and the client: approved catalog records, contributor submissions and the
// Entry sum type that unifies them for display and filtering.
package catalog

import (
	"strings"
	"time"
)

// ManuscriptType is the marking type dropped by the exclude-manuscripts filter.
const ManuscriptType = "Manuscript"

// Marking is the set of fields shared by catalog records and submissions.
type Marking struct {
	Name      string `json:"name"`
	Town      string `json:"town"`
	State     string `json:"state"`
	DateRange string `json:"date_range"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	ImageURL  string `json:"image_url,omitempty"`
}

// HasImage reports whether the marking references an image.
func (m Marking) HasImage() bool {
	return strings.TrimSpace(m.ImageURL) != ""
}

// Details are the optional descriptive fields of an entry.
type Details struct {
	Description        string `json:"description,omitempty"`
	CitationReferences string `json:"citation_references,omitempty"`
	Dimensions         string `json:"dimensions,omitempty"`
	Manuscript         string `json:"manuscript,omitempty"`
	Rarity             string `json:"rarity,omitempty"`
}

// Record is an approved, publicly listed catalog entry.
type Record struct {
	ID string `json:"id"`
	Marking
	Details
	Valuation string    `json:"valuation,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is a contributor's proposed entry awaiting or past review.
type Submission struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	SubmitterName string `json:"submitter_name,omitempty"`
	Marking
	Details
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// Status is the review state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusRevision Status = "revision"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusRevision}

// ParseStatus maps s to a known status. Unknown or empty values are pending,
// which is how a submission without a reviewed status is shown.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	case StatusRevision:
		return StatusRevision
	default:
		return StatusPending
	}
}

// Label is the human readable form of the status.
func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusRevision:
		return "Needs Revision"
	default:
		return "Pending"
	}
}
